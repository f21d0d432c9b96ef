package rules

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Tick advances the world by one step: movement, collision, pickups, deaths,
// food upkeep and the leaderboard. It returns what happened in that order.
func (w *World) Tick() []Event {
	start := time.Now()
	w.mu.Lock()
	defer w.mu.Unlock()

	w.tick++
	ids := w.sortedIDs()

	// 1. move every live snake
	var shrank []Event
	for _, id := range ids {
		s := w.snakes[id]
		if s.IsDead {
			continue
		}
		if ev, ok := w.applyBoostCost(s); ok {
			shrank = append(shrank, ev)
		}
		s.Speed = w.settings.speedFor(s.Length, s.Boosting)
		s.Move(s.Speed, w.settings.Width, w.settings.Height)
	}

	// 2. resolve collisions against the fresh positions
	snapshot := make([]SnakeState, 0, len(ids))
	for _, id := range ids {
		s := w.snakes[id]
		if s.IsDead {
			continue
		}
		snapshot = append(snapshot, SnakeState{ID: s.ID, Head: s.Head(), Radius: s.Radius, Body: s.Body})
	}
	decisions := ResolveCollisions(snapshot, w.sortedFoods(), w.settings)

	// 3. pickups
	var eaten []Event
	for _, p := range decisions.Pickups {
		f, ok := w.foods[p.FoodID]
		if !ok {
			continue
		}
		s := w.snakes[p.SnakeID]
		delete(w.foods, f.ID)
		s.Score += f.Value
		s.Grow(f.Value, w.settings.MaxLength)
		s.Radius = w.settings.radiusFor(s.Score)
		eaten = append(eaten,
			FoodEaten{Food: *f, SnakeID: s.ID},
			SnakeGrew{ID: s.ID, Length: s.Length, Score: s.Score},
		)
	}

	// survivors are reported before the dead are removed
	dying := map[string]bool{}
	for _, d := range decisions.Deaths {
		dying[d.SnakeID] = true
	}
	events := make([]Event, 0, len(snapshot)+len(eaten)+len(shrank)+2*len(decisions.Deaths)+2)
	for _, st := range snapshot {
		if dying[st.ID] {
			continue
		}
		s := w.snakes[st.ID]
		events = append(events, SnakeMoved{Snake: s.Clone(), Steered: s.steered})
		s.steered = false
	}
	events = append(events, shrank...)
	events = append(events, eaten...)

	// 4. deaths
	for _, d := range decisions.Deaths {
		s, ok := w.snakes[d.SnakeID]
		if !ok {
			continue
		}
		s.IsDead = true
		dropped := w.dropBody(s)
		delete(w.snakes, s.ID)
		log.WithFields(log.Fields{
			"snake":    s.ID,
			"name":     s.Name,
			"cause":    d.Cause,
			"killedBy": d.KilledBy,
			"score":    s.Score,
		}).Info("snake died")
		events = append(events,
			SnakeDied{Snake: s.Clone(), Cause: d.Cause, KilledBy: d.KilledBy},
			FoodSpawned{Foods: dropped},
		)
	}

	// 5. food upkeep, counters and leaderboard
	if ev, ok := w.maintainFood(); ok {
		events = append(events, ev)
	}
	w.recount()

	board := rankSnakes(w.snakes, w.settings.LeaderboardSize)
	if !sameLeaderboard(board, w.leaderboard) {
		w.leaderboard = board
		entries := make([]LeaderboardEntry, len(board))
		copy(entries, board)
		events = append(events, LeaderboardChanged{Entries: entries})
	}

	log.WithFields(log.Fields{
		"tick":     w.tick,
		"snakes":   w.totalSnakes,
		"food":     w.totalFood,
		"eaten":    len(decisions.Pickups),
		"deaths":   len(decisions.Deaths),
		"duration": time.Since(start),
	}).Debug("tick")
	return events
}

// TickCount returns how many ticks the world has run.
func (w *World) TickCount() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tick
}

// applyBoostCost charges a boosting snake one length point every
// BoostCostTicks ticks and turns boost off once it is back at its starting
// length.
func (w *World) applyBoostCost(s *Snake) (Event, bool) {
	if !s.Boosting || w.settings.BoostCostTicks <= 0 {
		return nil, false
	}
	s.boostTicks++
	if s.boostTicks < w.settings.BoostCostTicks {
		return nil, false
	}
	s.boostTicks = 0
	if s.Length <= w.settings.DefaultLength || !s.Shrink(1, w.settings.DefaultLength) {
		s.Boosting = false
		s.steered = true
		return nil, false
	}
	if s.Score > 0 {
		s.Score--
	}
	s.Radius = w.settings.radiusFor(s.Score)
	if s.Length <= w.settings.DefaultLength {
		s.Boosting = false
		s.steered = true
	}
	return SnakeShrank{ID: s.ID, Length: s.Length, Score: s.Score}, true
}
