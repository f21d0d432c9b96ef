package rules

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

func eventsOf(events []Event, match func(Event) bool) []Event {
	var out []Event
	for _, e := range events {
		if match(e) {
			out = append(out, e)
		}
	}
	return out
}

func diedEvents(events []Event) []SnakeDied {
	var out []SnakeDied
	for _, e := range events {
		if d, ok := e.(SnakeDied); ok {
			out = append(out, d)
		}
	}
	return out
}

func TestTickIncrementsCounter(t *testing.T) {
	w := NewWorld(testSettings())
	w.Tick()
	w.Tick()
	require.Equal(t, uint64(2), w.TickCount())
	require.Equal(t, uint64(2), w.Stats().Tick)
}

func TestTickMovesSnake(t *testing.T) {
	w := NewWorld(testSettings())
	addSnake(t, w, "a", Point{X: 0, Y: 0}, 0)

	events := w.Tick()

	s, ok := w.Snake("a")
	require.True(t, ok)
	require.InDelta(t, 2, s.Position.X, 1e-9)
	require.InDelta(t, 0, s.Position.Y, 1e-9)
	require.Equal(t, s.Position, s.Body[0])
	require.Equal(t, 2.0, s.Speed)

	moved := eventsOf(events, func(e Event) bool { _, ok := e.(SnakeMoved); return ok })
	require.Len(t, moved, 1)
	require.Equal(t, "a", moved[0].(SnakeMoved).Snake.ID)
}

func TestTickSteeredFlag(t *testing.T) {
	w := NewWorld(testSettings())
	addSnake(t, w, "a", Point{X: 100, Y: 100}, 0)

	require.True(t, w.UpdateDirection("a", 45))
	events := w.Tick()
	require.True(t, events[0].(SnakeMoved).Steered)

	events = w.Tick()
	require.False(t, events[0].(SnakeMoved).Steered)
}

func TestTickWrapsAroundEdges(t *testing.T) {
	w := NewWorld(testSettings())
	addSnake(t, w, "a", Point{X: 999, Y: 500}, 0)

	w.Tick()
	s, _ := w.Snake("a")
	require.InDelta(t, 1, s.Position.X, 1e-9)
}

func TestTickFoodPickup(t *testing.T) {
	w := NewWorld(testSettings())
	f := w.AddFood(Point{X: 5, Y: 5})
	addSnake(t, w, "a", Point{X: 4, Y: 5}, 0)

	events := w.Tick()

	eaten := eventsOf(events, func(e Event) bool { _, ok := e.(FoodEaten); return ok })
	require.Len(t, eaten, 1, spew.Sdump(events))
	require.Equal(t, f.ID, eaten[0].(FoodEaten).Food.ID)
	require.Equal(t, "a", eaten[0].(FoodEaten).SnakeID)

	s, _ := w.Snake("a")
	require.Equal(t, 1, s.Score)
	require.Equal(t, 11, s.Length)
	require.Empty(t, w.Foods())

	// the pellet is gone, nothing more to eat
	events = w.Tick()
	require.Empty(t, eventsOf(events, func(e Event) bool { _, ok := e.(FoodEaten); return ok }))
	s, _ = w.Snake("a")
	require.Equal(t, 1, s.Score)
}

func TestTickDeathDropsBody(t *testing.T) {
	w := NewWorld(testSettings())

	a := addSnake(t, w, "a", Point{X: 100, Y: 100}, 0)
	a.Body = []Point{{X: 100, Y: 100}, {X: 98, Y: 100}, {X: 96, Y: 100}, {X: 94, Y: 100}, {X: 92, Y: 100}}
	a.Length = 5

	b := addSnake(t, w, "b", Point{X: 105, Y: 150}, 90)
	b.Body = nil
	for y := 150.0; y >= 100; y -= 10 {
		b.Body = append(b.Body, Point{X: 105, Y: y})
	}
	b.Length = len(b.Body) + 1

	events := w.Tick()

	died := diedEvents(events)
	require.Len(t, died, 1, spew.Sdump(events))
	require.Equal(t, "a", died[0].Snake.ID)
	require.Equal(t, DeathCauseSnakeCollision, died[0].Cause)
	require.Equal(t, "b", died[0].KilledBy)
	require.True(t, died[0].Snake.IsDead)

	spawned := eventsOf(events, func(e Event) bool { _, ok := e.(FoodSpawned); return ok })
	require.Len(t, spawned, 1)
	foods := spawned[0].(FoodSpawned).Foods
	require.Len(t, foods, 5)
	for i, f := range foods {
		require.Equal(t, died[0].Snake.Body[i], f.Position)
		require.Equal(t, RGB{1, 2, 3}, f.Color)
	}
	require.Len(t, w.Foods(), 5)

	_, ok := w.Snake("a")
	require.False(t, ok)
	for _, e := range w.Leaderboard() {
		require.NotEqual(t, "a", e.ID)
	}

	events = w.Tick()
	require.Empty(t, diedEvents(events))
	for _, s := range w.Snakes() {
		require.NotEqual(t, "a", s.ID)
	}
}

func TestTickMutualDeath(t *testing.T) {
	w := NewWorld(testSettings())

	a := addSnake(t, w, "a", Point{X: 100, Y: 100}, 0)
	a.Body = []Point{{X: 100, Y: 100}}
	for y := 110.0; y <= 150; y += 10 {
		a.Body = append(a.Body, Point{X: 100, Y: y})
	}
	a.Length = len(a.Body) + 1

	b := addSnake(t, w, "b", Point{X: 96, Y: 150}, 0)
	b.Body = []Point{{X: 96, Y: 150}}
	for y := 150.0; y >= 100; y -= 10 {
		b.Body = append(b.Body, Point{X: 106, Y: y})
	}
	b.Length = len(b.Body) + 1

	events := w.Tick()

	died := diedEvents(events)
	require.Len(t, died, 2, spew.Sdump(events))
	ids := map[string]int{}
	for _, d := range died {
		ids[d.Snake.ID]++
	}
	require.Equal(t, map[string]int{"a": 1, "b": 1}, ids)

	spawned := eventsOf(events, func(e Event) bool { _, ok := e.(FoodSpawned); return ok })
	require.Len(t, spawned, 2)
	require.Equal(t, 0, w.Stats().Snakes)
}

func TestTickHeadToHead(t *testing.T) {
	w := NewWorld(testSettings())
	addSnake(t, w, "a", Point{X: 100, Y: 100}, 0)
	addSnake(t, w, "b", Point{X: 106, Y: 100}, 180)

	died := diedEvents(w.Tick())
	require.Len(t, died, 2)
	for _, d := range died {
		require.Equal(t, DeathCauseHeadToHeadCollision, d.Cause)
	}
}

func TestTickSelfCollisionNeverKills(t *testing.T) {
	w := NewWorld(testSettings())
	a := addSnake(t, w, "a", Point{X: 100, Y: 100}, 0)
	// coiled tightly around its own head
	a.Body = []Point{{X: 100, Y: 100}, {X: 101, Y: 101}, {X: 102, Y: 100}, {X: 101, Y: 99}, {X: 100, Y: 100}}
	a.Length = 20

	for i := 0; i < 10; i++ {
		require.Empty(t, diedEvents(w.Tick()))
	}
	_, ok := w.Snake("a")
	require.True(t, ok)
}

func TestTickBoostCostsLength(t *testing.T) {
	settings := testSettings()
	settings.BoostCostTicks = 2
	w := NewWorld(settings)
	a := addSnake(t, w, "a", Point{X: 100, Y: 100}, 0)
	a.Length = 12
	a.Score = 2
	require.True(t, w.SetBoost("a", true))

	events := w.Tick()
	s, _ := w.Snake("a")
	require.Equal(t, 3.0, s.Speed)
	require.Empty(t, eventsOf(events, func(e Event) bool { _, ok := e.(SnakeShrank); return ok }))

	events = w.Tick()
	shrank := eventsOf(events, func(e Event) bool { _, ok := e.(SnakeShrank); return ok })
	require.Len(t, shrank, 1)
	require.Equal(t, SnakeShrank{ID: "a", Length: 11, Score: 1}, shrank[0])

	w.Tick()
	w.Tick()
	s, _ = w.Snake("a")
	require.Equal(t, 10, s.Length)
	require.False(t, s.Boosting)
}

func TestTickLeaderboardChangedOnlyOnChange(t *testing.T) {
	w := NewWorld(testSettings())
	addSnake(t, w, "a", Point{X: 100, Y: 100}, 0)

	board := eventsOf(w.Tick(), func(e Event) bool { _, ok := e.(LeaderboardChanged); return ok })
	require.Len(t, board, 1)
	require.Equal(t, []LeaderboardEntry{{ID: "a", Name: "a", Score: 0}}, board[0].(LeaderboardChanged).Entries)

	board = eventsOf(w.Tick(), func(e Event) bool { _, ok := e.(LeaderboardChanged); return ok })
	require.Empty(t, board)

	w.RemoveSnake("a")
	board = eventsOf(w.Tick(), func(e Event) bool { _, ok := e.(LeaderboardChanged); return ok })
	require.Len(t, board, 1)
	require.Empty(t, board[0].(LeaderboardChanged).Entries)
}

func TestTickFoodUpkeep(t *testing.T) {
	settings := testSettings()
	settings.MinFood = 3
	w := NewWorld(settings)

	spawned := eventsOf(w.Tick(), func(e Event) bool { _, ok := e.(FoodSpawned); return ok })
	require.Len(t, spawned, 1)
	require.Len(t, w.Foods(), 3)
}

func TestTickInvariants(t *testing.T) {
	settings := testSettings()
	settings.SpeedDecay = 0.01
	settings.MinFood = 100
	settings.FoodSpawnPerTick = 20
	w := NewWorld(settings)
	w.SpawnBots(15)
	wander := NewWander(30)

	for i := 0; i < 300; i++ {
		for _, s := range w.Snakes() {
			if angle, ok := wander.Steer(s, nil); ok {
				w.UpdateDirection(s.ID, angle)
			}
		}
		for _, e := range w.Tick() {
			if m, ok := e.(SnakeMoved); ok {
				require.Equal(t, m.Snake.Position, m.Snake.Body[0])
			}
		}
		snakes := w.Snakes()
		for _, s := range snakes {
			require.True(t, len(s.Body) <= s.Length, spew.Sdump(s))
			require.True(t, s.Length >= 1)
			require.Equal(t, s.Position, s.Body[0])
			require.False(t, s.IsDead)
		}
		st := w.Stats()
		require.Equal(t, len(snakes), st.Snakes)
		require.Equal(t, len(w.Foods()), st.Food)
	}
}
