package rules

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// World is the authoritative arena state. All methods are safe for
// concurrent use and none of them block on I/O.
type World struct {
	mu       sync.Mutex
	settings Settings
	rand     *rand.Rand

	snakes     map[string]*Snake
	foods      map[uint64]*Food
	nextFoodID uint64
	tick       uint64

	totalSnakes int
	totalFood   int
	leaderboard []LeaderboardEntry
}

// Stats is a point in time summary of the world.
type Stats struct {
	Tick   uint64 `json:"tick"`
	Snakes int    `json:"snakes"`
	Bots   int    `json:"bots"`
	Food   int    `json:"food"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// NewWorld creates a world and scatters the initial food.
func NewWorld(settings Settings) *World {
	w := &World{
		settings: settings,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		snakes:   map[string]*Snake{},
		foods:    map[uint64]*Food{},
	}
	for i := 0; i < settings.InitialFood; i++ {
		w.spawnFood(w.randomPoint(), settings.FoodValue, randomFoodColor())
	}
	w.recount()
	return w
}

// Settings returns the tuning the world was created with.
func (w *World) Settings() Settings {
	return w.settings
}

// AddSnake registers s under its id. A duplicate id replaces the existing
// snake and reports ErrDuplicateID.
func (w *World) AddSnake(s *Snake) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var err error
	if _, ok := w.snakes[s.ID]; ok {
		log.WithField("snake", s.ID).Warn("snake id already registered, replacing")
		err = ErrDuplicateID
	}
	w.snakes[s.ID] = s
	w.recount()
	return err
}

// SpawnSnake creates a snake at a random position with the next palette
// color and registers it.
func (w *World) SpawnSnake(name string, isBot bool) Snake {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := NewSnake(newSnakeID(), name, nextColor(), isBot, w.randomPoint(), w.settings)
	s.Direction = w.rand.Float64() * 360
	w.snakes[s.ID] = s
	w.recount()
	return s.Clone()
}

// SpawnBots adds n bot snakes.
func (w *World) SpawnBots(n int) []Snake {
	bots := make([]Snake, 0, n)
	for i := 0; i < n; i++ {
		bots = append(bots, w.SpawnSnake(fmt.Sprintf("Bot %d", i+1), true))
	}
	return bots
}

// RemoveSnake drops a snake from the world. Removing an unknown id is a
// no-op and reports false.
func (w *World) RemoveSnake(id string) (*Snake, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	s, ok := w.snakes[id]
	if !ok {
		return nil, false
	}
	delete(w.snakes, id)
	w.recount()
	return s, true
}

// UpdateDirection sets the heading in degrees for a live snake.
func (w *World) UpdateDirection(id string, angle float64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	s, ok := w.snakes[id]
	if !ok || s.IsDead {
		return false
	}
	angle = wrap(angle, 360)
	if s.Direction != angle {
		s.Direction = angle
		s.steered = true
	}
	return true
}

// SetBoost turns boosting on or off. Boost is refused while the snake is at
// or below its starting length.
func (w *World) SetBoost(id string, boost bool) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	s, ok := w.snakes[id]
	if !ok || s.IsDead {
		return false
	}
	if boost && s.Length <= w.settings.DefaultLength {
		boost = false
	}
	if s.Boosting != boost {
		s.Boosting = boost
		s.boostTicks = 0
		s.steered = true
	}
	return true
}

// AddFood places a pellet at pos with the default value.
func (w *World) AddFood(pos Point) Food {
	w.mu.Lock()
	defer w.mu.Unlock()

	f := w.spawnFood(pos.Wrap(w.settings.Width, w.settings.Height), w.settings.FoodValue, randomFoodColor())
	w.recount()
	return *f
}

// MaintainFood tops food up toward MinFood, at most FoodSpawnPerTick pellets
// per call.
func (w *World) MaintainFood() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ev, ok := w.maintainFood(); ok {
		return []Event{ev}
	}
	return nil
}

// Snake returns a copy of the snake with id.
func (w *World) Snake(id string) (Snake, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	s, ok := w.snakes[id]
	if !ok {
		return Snake{}, false
	}
	return s.Clone(), true
}

// Snakes returns copies of every snake ordered by id.
func (w *World) Snakes() []Snake {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Snake, 0, len(w.snakes))
	for _, id := range w.sortedIDs() {
		out = append(out, w.snakes[id].Clone())
	}
	return out
}

// Foods returns every pellet ordered by id.
func (w *World) Foods() []Food {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sortedFoods()
}

// Leaderboard ranks the live snakes as they are right now.
func (w *World) Leaderboard() []LeaderboardEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return rankSnakes(w.snakes, w.settings.LeaderboardSize)
}

// Stats returns the cached counters.
func (w *World) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()

	bots := 0
	for _, s := range w.snakes {
		if s.IsBot {
			bots++
		}
	}
	return Stats{
		Tick:   w.tick,
		Snakes: w.totalSnakes,
		Bots:   bots,
		Food:   w.totalFood,
		Width:  int(w.settings.Width),
		Height: int(w.settings.Height),
	}
}

func (w *World) String() string {
	st := w.Stats()
	return fmt.Sprintf("World(%dx%d tick=%d snakes=%d bots=%d food=%d)",
		st.Width, st.Height, st.Tick, st.Snakes, st.Bots, st.Food)
}

func (w *World) randomPoint() Point {
	return Point{
		X: w.rand.Float64() * w.settings.Width,
		Y: w.rand.Float64() * w.settings.Height,
	}
}

func (w *World) spawnFood(pos Point, value int, color RGB) *Food {
	w.nextFoodID++
	f := &Food{ID: w.nextFoodID, Position: pos, Value: value, Color: color}
	w.foods[f.ID] = f
	return f
}

func (w *World) maintainFood() (Event, bool) {
	missing := w.settings.MinFood - len(w.foods)
	if missing <= 0 {
		return nil, false
	}
	if w.settings.FoodSpawnPerTick > 0 && missing > w.settings.FoodSpawnPerTick {
		missing = w.settings.FoodSpawnPerTick
	}
	spawned := make([]Food, 0, missing)
	for i := 0; i < missing; i++ {
		spawned = append(spawned, *w.spawnFood(w.randomPoint(), w.settings.FoodValue, randomFoodColor()))
	}
	w.recount()
	return FoodSpawned{Foods: spawned}, true
}

// dropBody turns every body segment of s into a pellet of its color.
func (w *World) dropBody(s *Snake) []Food {
	dropped := make([]Food, 0, len(s.Body))
	for _, p := range s.Body {
		dropped = append(dropped, *w.spawnFood(p, w.settings.FoodValue, s.Color))
	}
	return dropped
}

func (w *World) recount() {
	w.totalSnakes = len(w.snakes)
	w.totalFood = len(w.foods)
}

func (w *World) sortedIDs() []string {
	ids := make([]string, 0, len(w.snakes))
	for id := range w.snakes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (w *World) sortedFoods() []Food {
	out := make([]Food, 0, len(w.foods))
	for _, f := range w.foods {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
