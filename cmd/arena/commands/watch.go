package commands

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	termbox "github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	watchAddr   = "ws://localhost:3005/ws"
	watchWidth  = 5000.0
	watchHeight = 5000.0
	watchFPS    = 10
)

func init() {
	f := watchCmd.Flags()
	f.StringVarP(&watchAddr, "addr", "a", watchAddr, "websocket address of the arena")
	f.Float64Var(&watchWidth, "width", watchWidth, "arena width")
	f.Float64Var(&watchHeight, "height", watchHeight, "arena height")
	f.IntVar(&watchFPS, "fps", watchFPS, "redraws per second")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "watch the arena in the terminal without joining",
	Run: func(c *cobra.Command, args []string) {
		if err := watch(watchAddr); err != nil {
			log.WithError(err).Fatal("watch failed")
		}
	},
}

func watch(addr string) error {
	ws, _, err := websocket.DefaultDialer.Dial(addr, http.Header{})
	if err != nil {
		return errors.Wrapf(err, "unable to dial %s", addr)
	}
	defer ws.Close()

	v := newView()
	readErr := make(chan error, 1)
	go func() {
		for {
			_, frame, err := ws.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			if err := v.apply(frame); err != nil {
				log.WithError(err).Debug("skipping packet")
			}
		}
	}()

	if err := termbox.Init(); err != nil {
		return errors.Wrap(err, "unable to start terminal")
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc)

	events := make(chan termbox.Event)
	go func() {
		for {
			events <- termbox.PollEvent()
		}
	}()

	fps := watchFPS
	if fps <= 0 {
		fps = 10
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if ev.Type == termbox.EventKey && (ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q') {
				return nil
			}
		case err := <-readErr:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return errors.Wrap(err, "connection lost")
		case <-ticker.C:
			render(v.frame(), watchWidth, watchHeight, addr)
		}
	}
}
