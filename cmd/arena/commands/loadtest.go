package commands

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/battlesnakeio/arena/protocol"
)

var (
	loadAddr     = "ws://localhost:3005/ws"
	loadPlayers  = 50
	loadDuration = 30 * time.Second
	loadMoveRate = 5.0
)

func init() {
	f := loadTestCmd.Flags()
	f.StringVarP(&loadAddr, "addr", "a", loadAddr, "websocket address of the arena")
	f.IntVarP(&loadPlayers, "players", "n", loadPlayers, "number of players to connect")
	f.DurationVarP(&loadDuration, "duration", "d", loadDuration, "how long to keep the players connected")
	f.Float64Var(&loadMoveRate, "move-rate", loadMoveRate, "steering messages per second per player")
}

var loadTestCmd = &cobra.Command{
	Use:   "load-test",
	Short: "connect a crowd of random players to an arena",
	Run: func(*cobra.Command, []string) {
		ctx, cancel := context.WithTimeout(context.Background(), loadDuration)
		defer cancel()

		start := time.Now()
		log.WithField("players", loadPlayers).Info("starting load test")
		stats := loadTest(ctx, loadAddr, loadPlayers, loadMoveRate)
		log.WithFields(log.Fields{
			"elapsed":  time.Since(start),
			"players":  loadPlayers,
			"joined":   stats.joined,
			"failed":   stats.failed,
			"received": stats.received,
			"sent":     stats.sent,
		}).Info("load test complete")
	},
}

type loadStats struct {
	joined, failed, received, sent int64
}

func loadTest(ctx context.Context, addr string, players int, moveRate float64) loadStats {
	var (
		stats loadStats
		wg    sync.WaitGroup
	)
	for i := 0; i < players; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := loadPlayer(ctx, addr, fmt.Sprintf("load %d", i), moveRate, &stats)
			if err != nil {
				atomic.AddInt64(&stats.failed, 1)
				log.WithError(err).WithField("player", i).Warn("player failed")
			}
		}(i)
	}
	wg.Wait()
	return stats
}

func loadPlayer(ctx context.Context, addr, name string, moveRate float64, stats *loadStats) error {
	ws, _, err := websocket.DefaultDialer.Dial(addr, http.Header{})
	if err != nil {
		return errors.Wrap(err, "dial")
	}
	defer ws.Close()

	if err := ws.WriteMessage(websocket.TextMessage,
		protocol.MustEncode(protocol.JoinGame, protocol.Join{Name: name})); err != nil {
		return errors.Wrap(err, "join")
	}
	atomic.AddInt64(&stats.joined, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
			atomic.AddInt64(&stats.received, 1)
		}
	}()

	limiter := rate.NewLimiter(rate.Limit(moveRate), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			break
		}
		move := protocol.Move{Direction: rand.Float64() * 360}
		if err := ws.WriteMessage(websocket.TextMessage, protocol.MustEncode(protocol.MoveSnake, move)); err != nil {
			return errors.Wrap(err, "move")
		}
		atomic.AddInt64(&stats.sent, 1)
	}

	ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	select {
	case <-done:
	case <-time.After(time.Second):
	}
	return nil
}
