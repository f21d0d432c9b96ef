package protocol

import (
	"github.com/battlesnakeio/arena/rules"
)

// Translator turns world events into server packets. A snake's full state
// is only sent on the tick it was steered and on every ResyncEvery-th tick,
// everything else is sent as it happens.
type Translator struct {
	ResyncEvery uint64
}

// Resync reports whether tick carries the full snake and minimap refresh.
func (t Translator) Resync(tick uint64) bool {
	return t.ResyncEvery <= 1 || tick%t.ResyncEvery == 0
}

// Packets maps the events of one tick onto packets in event order.
func (t Translator) Packets(tick uint64, events []rules.Event) []ServerPacket {
	resync := t.Resync(tick)
	packets := make([]ServerPacket, 0, len(events)+1)
	var minimap []MinimapSnake

	for _, e := range events {
		switch ev := e.(type) {
		case rules.SnakeMoved:
			if ev.Steered || resync {
				packets = append(packets, ServerPacket{Message: UpdateSnake, Data: ev.Snake})
			}
			if resync {
				minimap = append(minimap, minimapSnake(ev.Snake))
			}
		case rules.FoodEaten:
			packets = append(packets, ServerPacket{Message: FoodEaten, Data: FoodEatenData{
				ID:       ev.Food.ID,
				Position: ev.Food.Position,
				SnakeID:  ev.SnakeID,
			}})
		case rules.SnakeGrew:
			packets = append(packets, ServerPacket{Message: IncreasePlayerLength, Data: LengthData{
				ID: ev.ID, Length: ev.Length, Score: ev.Score,
			}})
		case rules.SnakeShrank:
			packets = append(packets, ServerPacket{Message: DecreasePlayerLength, Data: LengthData{
				ID: ev.ID, Length: ev.Length, Score: ev.Score,
			}})
		case rules.SnakeDied:
			packets = append(packets, ServerPacket{Message: SnakeDied, Data: SnakeDiedData{
				ID: ev.Snake.ID, Cause: ev.Cause, KilledBy: ev.KilledBy,
			}})
		case rules.FoodSpawned:
			packets = append(packets, ServerPacket{Message: FoodSpawned, Data: NewFoodSpawned(ev.Foods)})
		case rules.LeaderboardChanged:
			packets = append(packets, ServerPacket{Message: UpdateLeaderboard, Data: LeaderboardData{Entries: ev.Entries}})
		}
	}
	if resync {
		if minimap == nil {
			minimap = []MinimapSnake{}
		}
		packets = append(packets, ServerPacket{Message: UpdateMinimap, Data: MinimapData{Snakes: minimap}})
	}
	return packets
}

// Snapshot is the catch-up sent to a player right after it joined: every
// other snake, all food and the current leaderboard.
func Snapshot(self string, snakes []rules.Snake, foods []rules.Food, board []rules.LeaderboardEntry) []ServerPacket {
	packets := make([]ServerPacket, 0, len(snakes)+2)
	for _, s := range snakes {
		if s.ID == self {
			continue
		}
		packets = append(packets, ServerPacket{Message: UpdateSnake, Data: s})
	}
	if len(foods) > 0 {
		packets = append(packets, ServerPacket{Message: FoodSpawned, Data: NewFoodSpawned(foods)})
	}
	if board == nil {
		board = []rules.LeaderboardEntry{}
	}
	packets = append(packets, ServerPacket{Message: UpdateLeaderboard, Data: LeaderboardData{Entries: board}})
	return packets
}

// NewFoodSpawned builds the FoodSpawned payload for foods.
func NewFoodSpawned(foods []rules.Food) FoodSpawnedData {
	d := FoodSpawnedData{
		Positions: make([]rules.Point, len(foods)),
		Foods:     foods,
	}
	for i, f := range foods {
		d.Positions[i] = f.Position
	}
	if len(foods) > 0 {
		c := foods[0].Color
		for _, f := range foods[1:] {
			if f.Color != c {
				return d
			}
		}
		d.Color = &c
	}
	return d
}

func minimapSnake(s rules.Snake) MinimapSnake {
	return MinimapSnake{ID: s.ID, X: s.Position.X, Y: s.Position.Y, Radius: s.Radius, Color: s.Color}
}
