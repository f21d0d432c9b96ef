package hub

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/battlesnakeio/arena/protocol"
)

// State is where a connection is in its lifecycle.
type State int

// Connection states.
const (
	StateConnecting State = iota
	StateAwaitingJoin
	StateJoined
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAwaitingJoin:
		return "awaiting-join"
	case StateJoined:
		return "joined"
	case StateDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// Conn is one websocket client. Its reader runs in Hub.Serve and its writer
// in a goroutine fed by the outbound queue.
type Conn struct {
	id      string
	hub     *Hub
	ws      *websocket.Conn
	limiter *rate.Limiter
	logger  *log.Entry

	mu      sync.Mutex
	state   State
	snakeID string

	closeOnce sync.Once
}

func newConn(h *Hub, ws *websocket.Conn) *Conn {
	id := uuid.NewV4().String()
	limit := h.opts.InboundRate
	if limit <= 0 {
		limit = rate.Inf
	}
	burst := h.opts.InboundBurst
	if burst < 1 {
		burst = 1
	}
	return &Conn{
		id:      id,
		hub:     h,
		ws:      ws,
		limiter: rate.NewLimiter(limit, burst),
		logger:  log.WithField("conn", id).WithField("remote", ws.RemoteAddr().String()),
	}
}

// ID returns the connection id.
func (c *Conn) ID() string {
	return c.id
}

// State returns the lifecycle state.
func (c *Conn) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SnakeID returns the id of the snake this connection controls, if any.
func (c *Conn) SnakeID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snakeID
}

func (c *Conn) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

func (c *Conn) joined(snakeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateJoined
	c.snakeID = snakeID
}

func (c *Conn) readPump() {
	opts := c.hub.opts
	if opts.ReadLimit > 0 {
		c.ws.SetReadLimit(opts.ReadLimit)
	}
	c.extendDeadline()
	c.ws.SetPongHandler(func(string) error {
		c.extendDeadline()
		return nil
	})

	for {
		_, frame, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.WithError(err).Warn("read failed")
			} else {
				c.logger.WithError(err).Debug("read closed")
			}
			return
		}
		if !c.limiter.Allow() {
			inboundPackets.WithLabelValues("", "limited").Inc()
			c.logger.Debug("inbound rate exceeded, dropping packet")
			continue
		}
		if !c.handle(frame) {
			return
		}
	}
}

func (c *Conn) extendDeadline() {
	if c.hub.opts.PongWait > 0 {
		c.ws.SetReadDeadline(time.Now().Add(c.hub.opts.PongWait))
	}
}

func (c *Conn) writeDeadline() {
	var t time.Time
	if c.hub.opts.WriteWait > 0 {
		t = time.Now().Add(c.hub.opts.WriteWait)
	}
	c.ws.SetWriteDeadline(t)
}

func (c *Conn) writePump(q <-chan []byte) {
	ping := c.hub.opts.PingInterval
	if ping <= 0 {
		ping = time.Hour
	}
	ticker := time.NewTicker(ping)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case frame, ok := <-q:
			c.writeDeadline()
			if !ok {
				// dropped from the registry
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.WithError(err).Debug("write failed")
				return
			}
		case <-ticker.C:
			c.writeDeadline()
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handle applies one inbound frame. It returns false when the client asked
// to leave.
func (c *Conn) handle(frame []byte) bool {
	p, err := protocol.DecodeClient(frame)
	if err != nil {
		result := "malformed"
		if errors.Cause(err) == protocol.ErrUnknownMessage {
			result = "unknown"
		}
		inboundPackets.WithLabelValues("", result).Inc()
		c.logger.WithError(err).Warn("dropping packet")
		return true
	}

	state := c.State()
	result := "ok"
	switch p.Message {
	case protocol.JoinGame:
		result = c.handleJoin(p, state)
	case protocol.MoveSnake:
		result = c.handleMove(p, state)
	case protocol.LeaveGame:
		if state != StateJoined {
			c.logger.Debug("leave before join")
			result = "ignored"
			break
		}
		inboundPackets.WithLabelValues(p.Message, result).Inc()
		return false
	case protocol.Pong:
		c.extendDeadline()
	case protocol.FoodEat:
		// pickups are decided by the world, the client only hints
		c.logger.Debug("ignoring client food hint")
		result = "ignored"
	}
	inboundPackets.WithLabelValues(p.Message, result).Inc()
	return true
}

func (c *Conn) handleJoin(p protocol.ClientPacket, state State) string {
	if state == StateJoined {
		if _, alive := c.hub.World.Snake(c.SnakeID()); alive {
			c.logger.Debug("already joined")
			return "ignored"
		}
	}
	j, err := protocol.DecodeJoin(p.Data)
	if err != nil {
		c.logger.WithError(err).Warn("dropping packet")
		return "malformed"
	}
	c.hub.join(c, j.Name)
	return "ok"
}

func (c *Conn) handleMove(p protocol.ClientPacket, state State) string {
	if state != StateJoined {
		c.logger.Debug("move before join")
		return "ignored"
	}
	m, err := protocol.DecodeMove(p.Data)
	if err != nil {
		c.logger.WithError(err).Warn("dropping packet")
		return "malformed"
	}
	id := c.SnakeID()
	if !c.hub.World.UpdateDirection(id, m.Direction) {
		return "ignored"
	}
	if m.Boost != nil {
		c.hub.World.SetBoost(id, *m.Boost)
	}
	return "ok"
}

// close runs the disconnect path once.
func (c *Conn) close() {
	c.closeOnce.Do(func() {
		c.setState(StateDisconnected)
		c.hub.leave(c)
		c.ws.Close()
		c.logger.Info("client disconnected")
	})
}
