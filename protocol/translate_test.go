package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/battlesnakeio/arena/rules"
)

func tags(packets []ServerPacket) []string {
	out := make([]string, len(packets))
	for i, p := range packets {
		out[i] = p.Message
	}
	return out
}

func TestPacketsSteeredOnly(t *testing.T) {
	tr := Translator{ResyncEvery: 10}
	packets := tr.Packets(3, []rules.Event{
		rules.SnakeMoved{Snake: rules.Snake{ID: "a"}, Steered: true},
		rules.SnakeMoved{Snake: rules.Snake{ID: "b"}},
	})
	require.Equal(t, []string{UpdateSnake}, tags(packets))
	require.Equal(t, "a", packets[0].Data.(rules.Snake).ID)
}

func TestPacketsResync(t *testing.T) {
	tr := Translator{ResyncEvery: 10}
	packets := tr.Packets(20, []rules.Event{
		rules.SnakeMoved{Snake: rules.Snake{ID: "a", Position: rules.Point{X: 3, Y: 4}, Radius: 5}},
		rules.SnakeMoved{Snake: rules.Snake{ID: "b"}},
	})
	require.Equal(t, []string{UpdateSnake, UpdateSnake, UpdateMinimap}, tags(packets))
	minimap := packets[2].Data.(MinimapData)
	require.Len(t, minimap.Snakes, 2)
	require.Equal(t, MinimapSnake{ID: "a", X: 3, Y: 4, Radius: 5}, minimap.Snakes[0])
}

func TestPacketsDiscreteEvents(t *testing.T) {
	tr := Translator{ResyncEvery: 10}
	food := rules.Food{ID: 4, Position: rules.Point{X: 5, Y: 5}, Value: 1}
	packets := tr.Packets(1, []rules.Event{
		rules.FoodEaten{Food: food, SnakeID: "a"},
		rules.SnakeGrew{ID: "a", Length: 11, Score: 1},
		rules.SnakeShrank{ID: "b", Length: 10, Score: 0},
		rules.SnakeDied{Snake: rules.Snake{ID: "c"}, Cause: rules.DeathCauseSnakeCollision, KilledBy: "a"},
		rules.FoodSpawned{Foods: []rules.Food{food}},
		rules.LeaderboardChanged{Entries: []rules.LeaderboardEntry{{ID: "a", Name: "a", Score: 1}}},
	})
	require.Equal(t, []string{
		FoodEaten, IncreasePlayerLength, DecreasePlayerLength, SnakeDied, FoodSpawned, UpdateLeaderboard,
	}, tags(packets))
	require.Equal(t, FoodEatenData{ID: 4, Position: rules.Point{X: 5, Y: 5}, SnakeID: "a"}, packets[0].Data)
	require.Equal(t, SnakeDiedData{ID: "c", Cause: rules.DeathCauseSnakeCollision, KilledBy: "a"}, packets[3].Data)
}

func TestNewFoodSpawned(t *testing.T) {
	red := rules.RGB{255, 0, 0}
	d := NewFoodSpawned([]rules.Food{
		{ID: 1, Position: rules.Point{X: 1}, Color: red},
		{ID: 2, Position: rules.Point{X: 2}, Color: red},
	})
	require.Equal(t, []rules.Point{{X: 1}, {X: 2}}, d.Positions)
	require.NotNil(t, d.Color)
	require.Equal(t, red, *d.Color)

	d = NewFoodSpawned([]rules.Food{
		{ID: 1, Color: red},
		{ID: 2, Color: rules.RGB{0, 0, 255}},
	})
	require.Nil(t, d.Color)
}

func TestSnapshot(t *testing.T) {
	packets := Snapshot("me",
		[]rules.Snake{{ID: "me"}, {ID: "other"}},
		[]rules.Food{{ID: 1}},
		nil,
	)
	require.Equal(t, []string{UpdateSnake, FoodSpawned, UpdateLeaderboard}, tags(packets))
	require.Equal(t, "other", packets[0].Data.(rules.Snake).ID)
}
