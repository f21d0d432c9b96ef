package worker

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/battlesnakeio/arena/hub"
	"github.com/battlesnakeio/arena/rules"
)

// Bots keeps Count bots alive and steers them with Policy.
type Bots struct {
	Hub      *hub.Hub
	Policy   rules.Policy
	Interval time.Duration
	Count    int

	spawned int
}

// Run steers the bots every Interval until ctx is done.
func (b *Bots) Run(ctx context.Context) error {
	b.replenish()
	t := time.NewTicker(b.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			b.replenish()
			b.steer()
		}
	}
}

func (b *Bots) steer() {
	view := b.Hub.World.Snakes()
	for _, s := range view {
		if !s.IsBot || s.IsDead {
			continue
		}
		angle, ok := b.Policy.Steer(s, view)
		if !ok {
			continue
		}
		b.Hub.World.UpdateDirection(s.ID, angle)
	}
}

// replenish spawns bots until Count are alive.
func (b *Bots) replenish() {
	live := b.Hub.World.Stats().Bots
	for ; live < b.Count; live++ {
		b.spawned++
		s := b.Hub.SpawnBot(fmt.Sprintf("Bot %d", b.spawned))
		log.WithField("snake", s.ID).WithField("name", s.Name).Debug("bot spawned")
	}
}
