// Package testsuite holds the behaviour every scores.Store must share.
package testsuite

import (
	"context"
	"sync"
	"testing"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/battlesnakeio/arena/scores"
)

func result(name string, score int, at time.Time) scores.Result {
	return scores.Result{
		ID:       uuid.NewV4().String(),
		SnakeID:  uuid.NewV4().String(),
		Name:     name,
		Score:    score,
		Length:   10 + score,
		Cause:    "snake-collision",
		Recorded: at.UTC().Truncate(time.Millisecond),
	}
}

func testStoreRecordGet(t *testing.T, s scores.Store) {
	ctx := context.Background()
	r := result("ann", 7, time.Now())

	require.NoError(t, s.Record(ctx, r))

	got, err := s.Get(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, r.Name, got.Name)
	require.Equal(t, r.Score, got.Score)
	require.Equal(t, r.Length, got.Length)
	require.Equal(t, r.Cause, got.Cause)
	require.True(t, r.Recorded.Equal(got.Recorded))

	// Recording again replaces.
	r.Score = 9
	require.NoError(t, s.Record(ctx, r))
	got, err = s.Get(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, 9, got.Score)

	// Missing id.
	_, err = s.Get(ctx, r.ID+"-missing")
	require.Equal(t, scores.ErrNotFound, err)

	// Empty id is refused.
	require.Error(t, s.Record(ctx, scores.Result{Name: "nobody"}))
}

func testStoreTop(t *testing.T, s scores.Store) {
	ctx := context.Background()

	top, err := s.Top(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, top)

	now := time.Now()
	for i, score := range []int{3, 12, 1, 8, 5} {
		require.NoError(t, s.Record(ctx, result("snake", score, now.Add(time.Duration(i)*time.Second))))
	}

	top, err = s.Top(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	require.Equal(t, 12, top[0].Score)
	require.Equal(t, 8, top[1].Score)
	require.Equal(t, 5, top[2].Score)

	top, err = s.Top(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 5)
}

func testStoreConcurrentWriters(t *testing.T, s scores.Store) {
	ctx := context.Background()
	now := time.Now()

	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.Record(ctx, result("bot", i, now)))
		}(i)
	}
	wg.Wait()

	top, err := s.Top(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 20)
	require.Equal(t, 19, top[0].Score)
}

// Suite will execute the store testsuite.
func Suite(t *testing.T, s scores.Store, pretest func()) {
	s = scores.InstrumentStore(s)
	t.Run("RecordGet", func(t *testing.T) { pretest(); testStoreRecordGet(t, s) })
	t.Run("Top", func(t *testing.T) { pretest(); testStoreTop(t, s) })
	t.Run("ConcurrentWriters", func(t *testing.T) { pretest(); testStoreConcurrentWriters(t, s) })
}
