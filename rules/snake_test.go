package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnakeMoveTruncates(t *testing.T) {
	settings := testSettings()
	settings.DefaultLength = 3
	s := NewSnake("a", "a", RGB{}, false, Point{X: 0, Y: 0}, settings)

	for i := 0; i < 5; i++ {
		s.Move(2, 0, 0)
		require.True(t, len(s.Body) <= s.Length)
		require.Equal(t, s.Position, s.Body[0])
	}
	require.Len(t, s.Body, 3)
	require.InDelta(t, 10, s.Head().X, 1e-9)
	require.InDelta(t, 6, s.Tail().X, 1e-9)
}

func TestSnakeShrink(t *testing.T) {
	s := &Snake{Length: 4, Body: []Point{{X: 4}, {X: 3}, {X: 2}, {X: 1}}}
	require.True(t, s.Shrink(2, 1))
	require.Len(t, s.Body, 2)
	require.False(t, s.Shrink(5, 1))
	require.Equal(t, 2, s.Length)
}

func TestSnakeGrowCapped(t *testing.T) {
	s := &Snake{Length: 98}
	s.Grow(1, 100)
	require.Equal(t, 99, s.Length)
	s.Grow(5, 100)
	require.Equal(t, 100, s.Length)
	s.Grow(5, 0)
	require.Equal(t, 105, s.Length)
}

func TestSnakeClone(t *testing.T) {
	s := &Snake{ID: "a", Length: 2, Body: []Point{{X: 1}, {X: 2}}}
	c := s.Clone()
	c.Body[0].X = 99
	require.Equal(t, 1.0, s.Body[0].X)
}

func TestSpeedAndRadius(t *testing.T) {
	s := DefaultSettings()
	require.InDelta(t, 1.9, s.speedFor(10, false), 1e-9)
	require.InDelta(t, 0.5, s.speedFor(1000, false), 1e-9)
	require.InDelta(t, 2.85, s.speedFor(10, true), 1e-9)

	require.Equal(t, 5.0, s.radiusFor(9))
	require.Equal(t, 6.0, s.radiusFor(10))
	require.Equal(t, 20.0, s.radiusFor(10000))
}

func TestWanderSteer(t *testing.T) {
	w := NewWander(10)
	angle, ok := w.Steer(Snake{Direction: 90}, nil)
	require.True(t, ok)
	require.True(t, angle >= 80 && angle <= 100)

	_, ok = w.Steer(Snake{IsDead: true}, nil)
	require.False(t, ok)
}
