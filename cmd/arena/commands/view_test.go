package commands

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/battlesnakeio/arena/protocol"
	"github.com/battlesnakeio/arena/rules"
	"github.com/battlesnakeio/arena/scores"
)

func applyPacket(t *testing.T, v *view, message string, data interface{}) {
	frame, err := protocol.Encode(message, data)
	require.NoError(t, err)
	require.NoError(t, v.apply(frame))
}

func TestViewTracksSnakes(t *testing.T) {
	v := newView()
	a := rules.Snake{ID: "a", Name: "alice", Body: []rules.Point{{X: 1, Y: 1}}}
	b := rules.Snake{ID: "b", Name: "bob", Body: []rules.Point{{X: 2, Y: 2}}}

	applyPacket(t, v, protocol.PlayerJoined, a)
	applyPacket(t, v, protocol.UpdateSnake, b)
	f := v.frame()
	require.Len(t, f.snakes, 2)
	require.Equal(t, "a", f.snakes[0].ID)
	require.Equal(t, "b", f.snakes[1].ID)

	applyPacket(t, v, protocol.SnakeDied, protocol.SnakeDiedData{ID: "a", Cause: rules.DeathCauseSnakeCollision})
	applyPacket(t, v, protocol.PlayerLeft, protocol.PlayerLeftData{ID: "b"})
	f = v.frame()
	require.Len(t, f.snakes, 0)
	require.Equal(t, 4, f.packets)
}

func TestViewTracksFood(t *testing.T) {
	v := newView()
	foods := []rules.Food{
		{ID: 2, Position: rules.Point{X: 5, Y: 5}, Value: 1},
		{ID: 1, Position: rules.Point{X: 3, Y: 3}, Value: 1},
	}
	applyPacket(t, v, protocol.FoodSpawned, protocol.NewFoodSpawned(foods))
	f := v.frame()
	require.Len(t, f.foods, 2)
	require.Equal(t, uint64(1), f.foods[0].ID)

	applyPacket(t, v, protocol.FoodEaten, protocol.FoodEatenData{ID: 1, SnakeID: "a"})
	f = v.frame()
	require.Len(t, f.foods, 1)
	require.Equal(t, uint64(2), f.foods[0].ID)
}

func TestViewLeaderboard(t *testing.T) {
	v := newView()
	entries := []rules.LeaderboardEntry{{ID: "a", Name: "alice", Score: 3}}
	applyPacket(t, v, protocol.UpdateLeaderboard, protocol.LeaderboardData{Entries: entries})
	require.Equal(t, entries, v.frame().leaderboard)
}

func TestViewIgnoresUnknown(t *testing.T) {
	v := newView()
	applyPacket(t, v, protocol.UpdateMinimap, protocol.MinimapData{})
	require.Len(t, v.frame().snakes, 0)

	require.Error(t, v.apply([]byte("not json")))
}

func TestGridCell(t *testing.T) {
	g := grid{w: 10, h: 5, width: 100, height: 50}

	x, y, ok := g.cell(rules.Point{X: 0, Y: 0})
	require.True(t, ok)
	require.Equal(t, 0, x)
	require.Equal(t, 0, y)

	x, y, ok = g.cell(rules.Point{X: 99, Y: 49})
	require.True(t, ok)
	require.Equal(t, 9, x)
	require.Equal(t, 4, y)

	_, _, ok = g.cell(rules.Point{X: 100, Y: 10})
	require.False(t, ok)

	_, _, ok = grid{}.cell(rules.Point{})
	require.False(t, ok)
}

func TestOpenStore(t *testing.T) {
	s, err := openStore("memory", "")
	require.NoError(t, err)
	require.IsType(t, scores.InMemStore(), s)

	_, err = openStore("carrier-pigeon", "")
	require.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	defer log.SetLevel(log.GetLevel())
	defer log.SetFormatter(log.StandardLogger().Formatter)

	require.NoError(t, setupLogging("debug", "json"))
	require.Equal(t, log.DebugLevel, log.GetLevel())
	require.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)

	require.Error(t, setupLogging("loud", "text"))
	require.Error(t, setupLogging("info", "xml"))
}
