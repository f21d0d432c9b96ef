// Package scores keeps the results of finished snakes. It is a sink for the
// hall of fame and the /scores endpoint, the world itself is never stored.
package scores

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/battlesnakeio/arena/rules"
)

// CauseLeft is recorded for a snake whose player disconnected.
const CauseLeft = "left"

var (
	// ErrNotFound is returned when a result does not exist.
	ErrNotFound = errors.New("scores: result not found")
	// ErrInvalidResult is returned when a result is missing its id.
	ErrInvalidResult = errors.New("scores: result has no id")
)

// Result is the final state of one snake.
type Result struct {
	ID       string    `json:"id"`
	SnakeID  string    `json:"snakeId"`
	Name     string    `json:"name"`
	Score    int       `json:"score"`
	Length   int       `json:"length"`
	IsBot    bool      `json:"isBot"`
	Cause    string    `json:"cause"`
	Recorded time.Time `json:"recorded"`
}

// NewResult builds a result for s under a fresh id.
func NewResult(s rules.Snake, cause string) Result {
	return Result{
		ID:       uuid.NewV4().String(),
		SnakeID:  s.ID,
		Name:     s.Name,
		Score:    s.Score,
		Length:   s.Length,
		IsBot:    s.IsBot,
		Cause:    cause,
		Recorded: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Store is the interface to the backend store.
type Store interface {
	// Record saves r. Recording the same id twice replaces the result.
	Record(ctx context.Context, r Result) error
	// Get fetches a result by id.
	Get(ctx context.Context, id string) (Result, error)
	// Top returns up to limit results, best score first.
	Top(ctx context.Context, limit int) ([]Result, error)
}

// InMemStore returns an in memory implementation of the Store interface.
func InMemStore() Store {
	return &inmem{results: map[string]Result{}}
}

type inmem struct {
	results map[string]Result
	lock    sync.Mutex
}

func (in *inmem) Record(ctx context.Context, r Result) error {
	if r.ID == "" {
		return ErrInvalidResult
	}
	in.lock.Lock()
	defer in.lock.Unlock()

	in.results[r.ID] = r
	return nil
}

func (in *inmem) Get(ctx context.Context, id string) (Result, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	r, ok := in.results[id]
	if !ok {
		return Result{}, ErrNotFound
	}
	return r, nil
}

func (in *inmem) Top(ctx context.Context, limit int) ([]Result, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	out := make([]Result, 0, len(in.results))
	for _, r := range in.results {
		out = append(out, r)
	}
	Sort(out)
	return Limit(out, limit), nil
}

// Sort orders results best first: score, then earliest, then id.
func Sort(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Recorded.Equal(b.Recorded) {
			return a.Recorded.Before(b.Recorded)
		}
		return a.ID < b.ID
	})
}

// Limit truncates results to limit. A limit of 0 or less keeps everything.
func Limit(results []Result, limit int) []Result {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
