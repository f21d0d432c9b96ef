package commands

import (
	"fmt"
	"math"

	runewidth "github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"

	"github.com/battlesnakeio/arena/rules"
)

const (
	sidebarWidth = 28
	foodRune     = '·'
	headRune     = '@'
	bodyRune     = 'o'
)

var snakeColors = []termbox.Attribute{
	termbox.ColorGreen,
	termbox.ColorYellow,
	termbox.ColorBlue,
	termbox.ColorMagenta,
	termbox.ColorCyan,
	termbox.ColorRed,
}

func tbprint(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x += runewidth.RuneWidth(c)
	}
}

func fill(x, y, w, h int, cell termbox.Cell) {
	for ly := 0; ly < h; ly++ {
		for lx := 0; lx < w; lx++ {
			termbox.SetCell(x+lx, y+ly, cell.Ch, cell.Fg, cell.Bg)
		}
	}
}

// grid maps world coordinates onto a w by h block of terminal cells.
type grid struct {
	w, h          int
	width, height float64
}

func (g grid) cell(p rules.Point) (int, int, bool) {
	if g.w <= 0 || g.h <= 0 || g.width <= 0 || g.height <= 0 {
		return 0, 0, false
	}
	x := int(math.Floor(p.X / g.width * float64(g.w)))
	y := int(math.Floor(p.Y / g.height * float64(g.h)))
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return 0, 0, false
	}
	return x, y, true
}

func colorFor(i int) termbox.Attribute {
	return snakeColors[i%len(snakeColors)]
}

func render(f frame, width, height float64, addr string) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	tw, th := termbox.Size()

	boardW := tw - sidebarWidth - 2
	boardH := th - 2
	renderBoard(f, grid{w: boardW, h: boardH, width: width, height: height})

	x := boardW + 3
	tbprint(x, 0, termbox.ColorWhite|termbox.AttrBold, termbox.ColorDefault, "arena")
	tbprint(x, 1, termbox.ColorDefault, termbox.ColorDefault, addr)
	tbprint(x, 2, termbox.ColorDefault, termbox.ColorDefault,
		fmt.Sprintf("snakes %d  food %d", len(f.snakes), len(f.foods)))
	tbprint(x, 3, termbox.ColorDefault, termbox.ColorDefault, fmt.Sprintf("packets %d", f.packets))

	tbprint(x, 5, termbox.ColorWhite|termbox.AttrBold, termbox.ColorDefault, "leaderboard")
	for i, e := range f.leaderboard {
		if 6+i >= th-1 {
			break
		}
		line := fmt.Sprintf("%2d. %-16s %5d", i+1, runewidth.Truncate(e.Name, 16, "…"), e.Score)
		tbprint(x, 6+i, termbox.ColorDefault, termbox.ColorDefault, line)
	}
	tbprint(x, th-1, termbox.ColorDefault, termbox.ColorDefault, "q / esc to quit")

	termbox.Flush()
}

func renderBoard(f frame, g grid) {
	if g.w <= 0 || g.h <= 0 {
		return
	}
	border := termbox.Cell{Ch: ' ', Fg: termbox.ColorDefault, Bg: termbox.ColorDefault}
	fill(1, 1, g.w, g.h, border)

	termbox.SetCell(0, 0, '┌', termbox.ColorDefault, termbox.ColorDefault)
	termbox.SetCell(g.w+1, 0, '┐', termbox.ColorDefault, termbox.ColorDefault)
	termbox.SetCell(0, g.h+1, '└', termbox.ColorDefault, termbox.ColorDefault)
	termbox.SetCell(g.w+1, g.h+1, '┘', termbox.ColorDefault, termbox.ColorDefault)
	for x := 1; x <= g.w; x++ {
		termbox.SetCell(x, 0, '─', termbox.ColorDefault, termbox.ColorDefault)
		termbox.SetCell(x, g.h+1, '─', termbox.ColorDefault, termbox.ColorDefault)
	}
	for y := 1; y <= g.h; y++ {
		termbox.SetCell(0, y, '│', termbox.ColorDefault, termbox.ColorDefault)
		termbox.SetCell(g.w+1, y, '│', termbox.ColorDefault, termbox.ColorDefault)
	}

	for _, fd := range f.foods {
		if x, y, ok := g.cell(fd.Position); ok {
			termbox.SetCell(x+1, y+1, foodRune, termbox.ColorRed, termbox.ColorDefault)
		}
	}
	for i, s := range f.snakes {
		color := colorFor(i)
		for j := len(s.Body) - 1; j >= 0; j-- {
			x, y, ok := g.cell(s.Body[j])
			if !ok {
				continue
			}
			ch := bodyRune
			if j == 0 {
				ch = headRune
			}
			termbox.SetCell(x+1, y+1, ch, color, termbox.ColorDefault)
		}
	}
}
