package hub

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientListSlowConsumerIsDropped(t *testing.T) {
	l := NewClientList(1)
	c := &Conn{id: "slow"}
	q := l.Add(c)

	require.True(t, l.Send(c, []byte("1")))
	require.False(t, l.Send(c, []byte("2")))
	require.Equal(t, 0, l.Len())

	frame, ok := <-q
	require.True(t, ok)
	require.Equal(t, "1", string(frame))
	_, ok = <-q
	require.False(t, ok)

	// gone, nothing more is queued
	require.False(t, l.Send(c, []byte("3")))
	require.False(t, l.Remove(c))
}

func TestClientListBroadcast(t *testing.T) {
	l := NewClientList(4)
	a, b, c := &Conn{id: "a"}, &Conn{id: "b"}, &Conn{id: "c"}
	qa, qb, qc := l.Add(a), l.Add(b), l.Add(c)
	require.Equal(t, 3, l.Len())

	l.Broadcast([]byte("all"))
	l.BroadcastExcept(b, []byte("not b"))

	require.Equal(t, "all", string(<-qa))
	require.Equal(t, "not b", string(<-qa))
	require.Equal(t, "all", string(<-qb))
	require.Len(t, qb, 0)
	require.Equal(t, "all", string(<-qc))
	require.Equal(t, "not b", string(<-qc))

	require.True(t, l.Remove(a))
	require.Equal(t, 2, l.Len())
}

func TestStateString(t *testing.T) {
	require.Equal(t, "awaiting-join", StateAwaitingJoin.String())
	require.Equal(t, "joined", StateJoined.String())
	require.Equal(t, "unknown", State(42).String())
}
