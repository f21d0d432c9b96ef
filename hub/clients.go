package hub

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// ClientList is the registry of open connections and their outbound queues.
// Enqueueing never blocks: a connection whose queue is full is dropped from
// the list and its queue closed, which makes its writer hang up.
type ClientList struct {
	mu        sync.Mutex
	clients   map[*Conn]chan []byte
	queueSize int
}

// NewClientList returns an empty registry with queues of queueSize frames.
func NewClientList(queueSize int) *ClientList {
	if queueSize < 1 {
		queueSize = 1
	}
	return &ClientList{clients: map[*Conn]chan []byte{}, queueSize: queueSize}
}

// Add registers c and returns its outbound queue.
func (l *ClientList) Add(c *Conn) <-chan []byte {
	l.mu.Lock()
	defer l.mu.Unlock()

	if q, ok := l.clients[c]; ok {
		return q
	}
	q := make(chan []byte, l.queueSize)
	l.clients[c] = q
	connectionsGauge.Set(float64(len(l.clients)))
	return q
}

// Remove drops c and closes its queue. It reports whether c was registered.
func (l *ClientList) Remove(c *Conn) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.remove(c)
}

func (l *ClientList) remove(c *Conn) bool {
	q, ok := l.clients[c]
	if !ok {
		return false
	}
	delete(l.clients, c)
	close(q)
	connectionsGauge.Set(float64(len(l.clients)))
	return true
}

// Len returns the number of registered connections.
func (l *ClientList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Send enqueues frame for c only.
func (l *ClientList) Send(c *Conn, frame []byte) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	q, ok := l.clients[c]
	if !ok {
		return false
	}
	return l.enqueue(c, q, frame)
}

// Broadcast enqueues frame for every connection.
func (l *ClientList) Broadcast(frame []byte) {
	l.BroadcastExcept(nil, frame)
}

// BroadcastExcept enqueues frame for every connection but skip.
func (l *ClientList) BroadcastExcept(skip *Conn, frame []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for c, q := range l.clients {
		if c == skip {
			continue
		}
		l.enqueue(c, q, frame)
	}
}

// enqueue must be called with l.mu held.
func (l *ClientList) enqueue(c *Conn, q chan []byte, frame []byte) bool {
	select {
	case q <- frame:
		return true
	default:
		outboundKicks.Inc()
		log.WithField("conn", c.ID()).Warn("outbound queue full, dropping client")
		l.remove(c)
		return false
	}
}
