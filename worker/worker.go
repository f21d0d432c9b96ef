// Package worker drives the world: the tick loop advances it at a fixed rate
// and the bot loop steers the bots.
package worker

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/battlesnakeio/arena/hub"
	"github.com/battlesnakeio/arena/rules"
	"github.com/battlesnakeio/arena/scores"
)

// Worker runs the tick loop.
type Worker struct {
	Hub          *hub.Hub
	TickInterval time.Duration

	records sync.WaitGroup
}

// Run ticks the world every TickInterval until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	log.WithField("interval", w.TickInterval).Info("tick loop started")
	t := time.NewTicker(w.TickInterval)
	defer t.Stop()
	defer w.records.Wait()

	for {
		select {
		case <-ctx.Done():
			log.Info("tick loop stopped")
			return ctx.Err()
		case <-t.C:
			w.tick()
		}
	}
}

// tick does the actual work of one step.
func (w *Worker) tick() {
	start := time.Now()
	events := w.Hub.Step()
	elapsed := time.Since(start)

	tickDuration.Observe(elapsed.Seconds())
	stats := w.Hub.World.Stats()
	snakesGauge.Set(float64(stats.Snakes))
	foodGauge.Set(float64(stats.Food))

	if elapsed > w.TickInterval {
		log.WithFields(log.Fields{
			"tick":     stats.Tick,
			"duration": elapsed,
		}).Warn("tick overran interval")
	}

	results := deathResults(events)
	if len(results) == 0 {
		return
	}
	w.records.Add(1)
	go func() {
		defer w.records.Done()
		for _, r := range results {
			w.Hub.Record(r)
		}
	}()
}

func deathResults(events []rules.Event) []scores.Result {
	var results []scores.Result
	for _, e := range events {
		if d, ok := e.(rules.SnakeDied); ok {
			results = append(results, scores.NewResult(d.Snake, d.Cause))
		}
	}
	return results
}
