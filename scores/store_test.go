package scores_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/battlesnakeio/arena/rules"
	"github.com/battlesnakeio/arena/scores"
	"github.com/battlesnakeio/arena/scores/testsuite"
)

func TestInMemStore(t *testing.T) {
	var s scores.Store
	testsuite.Suite(t, &lazy{&s}, func() { s = scores.InMemStore() })
}

// lazy forwards to whatever store the pretest hook installed last.
type lazy struct{ s *scores.Store }

func (l *lazy) Record(ctx context.Context, r scores.Result) error {
	return (*l.s).Record(ctx, r)
}

func (l *lazy) Get(ctx context.Context, id string) (scores.Result, error) {
	return (*l.s).Get(ctx, id)
}

func (l *lazy) Top(ctx context.Context, limit int) ([]scores.Result, error) {
	return (*l.s).Top(ctx, limit)
}

func TestNewResult(t *testing.T) {
	r := scores.NewResult(rules.Snake{ID: "s1", Name: "ann", Score: 4, Length: 14, IsBot: true}, scores.CauseLeft)
	require.NotEmpty(t, r.ID)
	require.Equal(t, "s1", r.SnakeID)
	require.Equal(t, "ann", r.Name)
	require.Equal(t, 4, r.Score)
	require.Equal(t, 14, r.Length)
	require.True(t, r.IsBot)
	require.Equal(t, scores.CauseLeft, r.Cause)
	require.WithinDuration(t, time.Now(), r.Recorded, time.Minute)
}

func TestSortAndLimit(t *testing.T) {
	now := time.Now()
	results := []scores.Result{
		{ID: "b", Score: 2, Recorded: now},
		{ID: "a", Score: 2, Recorded: now},
		{ID: "c", Score: 2, Recorded: now.Add(-time.Second)},
		{ID: "d", Score: 5, Recorded: now},
	}
	scores.Sort(results)

	ids := []string{}
	for _, r := range scores.Limit(results, 3) {
		ids = append(ids, r.ID)
	}
	require.Equal(t, []string{"d", "c", "a"}, ids)
	require.Len(t, scores.Limit(results, 0), 4)
}
