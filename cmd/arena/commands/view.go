package commands

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/battlesnakeio/arena/protocol"
	"github.com/battlesnakeio/arena/rules"
)

// view is a spectator's picture of the arena built from server packets.
type view struct {
	mu          sync.Mutex
	snakes      map[string]rules.Snake
	foods       map[uint64]rules.Food
	leaderboard []rules.LeaderboardEntry
	packets     int
}

func newView() *view {
	return &view{
		snakes: map[string]rules.Snake{},
		foods:  map[uint64]rules.Food{},
	}
}

type inboundPacket struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// apply folds one frame into the view. Unknown tags are ignored.
func (v *view) apply(frame []byte) error {
	var p inboundPacket
	if err := json.Unmarshal(frame, &p); err != nil {
		return errors.Wrap(err, "bad frame")
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.packets++

	switch p.Message {
	case protocol.UpdateSnake, protocol.PlayerJoined:
		var s rules.Snake
		if err := json.Unmarshal(p.Data, &s); err != nil {
			return errors.Wrap(err, p.Message)
		}
		v.snakes[s.ID] = s
	case protocol.SnakeDied:
		var d protocol.SnakeDiedData
		if err := json.Unmarshal(p.Data, &d); err != nil {
			return errors.Wrap(err, p.Message)
		}
		delete(v.snakes, d.ID)
	case protocol.PlayerLeft:
		var d protocol.PlayerLeftData
		if err := json.Unmarshal(p.Data, &d); err != nil {
			return errors.Wrap(err, p.Message)
		}
		delete(v.snakes, d.ID)
	case protocol.FoodSpawned:
		var d protocol.FoodSpawnedData
		if err := json.Unmarshal(p.Data, &d); err != nil {
			return errors.Wrap(err, p.Message)
		}
		for _, f := range d.Foods {
			v.foods[f.ID] = f
		}
	case protocol.FoodEaten:
		var d protocol.FoodEatenData
		if err := json.Unmarshal(p.Data, &d); err != nil {
			return errors.Wrap(err, p.Message)
		}
		delete(v.foods, d.ID)
	case protocol.UpdateLeaderboard:
		var d protocol.LeaderboardData
		if err := json.Unmarshal(p.Data, &d); err != nil {
			return errors.Wrap(err, p.Message)
		}
		v.leaderboard = d.Entries
	}
	return nil
}

// frame is an immutable copy of the view for rendering.
type frame struct {
	snakes      []rules.Snake
	foods       []rules.Food
	leaderboard []rules.LeaderboardEntry
	packets     int
}

func (v *view) frame() frame {
	v.mu.Lock()
	defer v.mu.Unlock()

	f := frame{
		snakes:      make([]rules.Snake, 0, len(v.snakes)),
		foods:       make([]rules.Food, 0, len(v.foods)),
		leaderboard: append([]rules.LeaderboardEntry(nil), v.leaderboard...),
		packets:     v.packets,
	}
	for _, s := range v.snakes {
		f.snakes = append(f.snakes, s)
	}
	for _, fd := range v.foods {
		f.foods = append(f.foods, fd)
	}
	sort.Slice(f.snakes, func(i, j int) bool { return f.snakes[i].ID < f.snakes[j].ID })
	sort.Slice(f.foods, func(i, j int) bool { return f.foods[i].ID < f.foods[j].ID })
	return f
}
