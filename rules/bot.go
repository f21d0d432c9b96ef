package rules

import (
	"math/rand"
	"sync"
	"time"
)

// Policy decides where a bot heads next. It gets a copy of the bot and of
// every snake in the world. ok == false leaves the heading unchanged.
type Policy interface {
	Steer(self Snake, view []Snake) (angle float64, ok bool)
}

// PolicyFunc adapts a plain function to Policy.
type PolicyFunc func(self Snake, view []Snake) (float64, bool)

// Steer calls f.
func (f PolicyFunc) Steer(self Snake, view []Snake) (float64, bool) {
	return f(self, view)
}

// Wander drifts the heading a few degrees at a time. It does not look at the
// other snakes.
type Wander struct {
	// MaxTurn is the largest change in degrees per call.
	MaxTurn float64

	mu   sync.Mutex
	rand *rand.Rand
}

// NewWander returns a Wander seeded from the clock.
func NewWander(maxTurn float64) *Wander {
	return &Wander{MaxTurn: maxTurn, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Steer implements Policy.
func (p *Wander) Steer(self Snake, _ []Snake) (float64, bool) {
	if self.IsDead || p.MaxTurn <= 0 {
		return 0, false
	}
	p.mu.Lock()
	delta := (p.rand.Float64()*2 - 1) * p.MaxTurn
	p.mu.Unlock()
	return wrap(self.Direction+delta, 360), true
}
