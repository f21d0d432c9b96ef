package commands

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/battlesnakeio/arena/api"
	"github.com/battlesnakeio/arena/hub"
	"github.com/battlesnakeio/arena/rules"
	"github.com/battlesnakeio/arena/scores"
)

func TestLoadTest(t *testing.T) {
	settings := rules.DefaultSettings()
	settings.InitialFood = 3
	store := scores.InMemStore()
	h := hub.New(rules.NewWorld(settings), store, hub.Options{OutboundQueue: 64, ResyncEvery: 10})
	srv := httptest.NewServer(api.New(":0", h, store).Handler())
	defer srv.Close()

	addr := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	stats := loadTest(ctx, addr, 3, 20)
	require.Equal(t, int64(3), stats.joined)
	require.Equal(t, int64(0), stats.failed)
	require.True(t, stats.sent > 0)
	require.True(t, stats.received >= 3)
}
