// Package hub connects websocket clients to the world. It owns the
// connection registry and the ordering between world mutations and the
// packets they produce.
package hub

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/battlesnakeio/arena/config"
	"github.com/battlesnakeio/arena/protocol"
	"github.com/battlesnakeio/arena/rules"
	"github.com/battlesnakeio/arena/scores"
)

const (
	defaultName   = "Anonymous"
	maxNameLength = 32
	recordTimeout = 2 * time.Second
)

// Options tune the connection handling.
type Options struct {
	InboundRate   rate.Limit
	InboundBurst  int
	OutboundQueue int
	ReadLimit     int64
	PingInterval  time.Duration
	PongWait      time.Duration
	WriteWait     time.Duration
	// JoinTimeout hangs up on connections that never join. 0 disables it.
	JoinTimeout time.Duration
	ResyncEvery uint64
}

// DefaultOptions reads the options from config.
func DefaultOptions() Options {
	return Options{
		InboundRate:   config.InboundRate,
		InboundBurst:  config.InboundBurst,
		OutboundQueue: config.OutboundQueue,
		ReadLimit:     config.ReadLimit,
		PingInterval:  config.PingInterval,
		PongWait:      config.PongWait,
		WriteWait:     config.WriteWait,
		JoinTimeout:   config.JoinTimeout,
		ResyncEvery:   uint64(config.ResyncEvery),
	}
}

// Hub serves websocket connections against one world.
type Hub struct {
	World   *rules.World
	Clients *ClientList
	Scores  scores.Store

	opts       Options
	translator protocol.Translator
	seq        sync.Mutex
}

// New creates a hub. store may be nil, results are then not kept.
func New(world *rules.World, store scores.Store, opts Options) *Hub {
	return &Hub{
		World:      world,
		Clients:    NewClientList(opts.OutboundQueue),
		Scores:     store,
		opts:       opts,
		translator: protocol.Translator{ResyncEvery: opts.ResyncEvery},
	}
}

// Sequence runs fn while no other world mutation is broadcasting. Every
// mutation that is followed by an enqueue of its packets goes through here
// so all clients see packets in mutation order.
func (h *Hub) Sequence(fn func()) {
	h.seq.Lock()
	defer h.seq.Unlock()
	fn()
}

// Step runs one world tick and broadcasts what happened.
func (h *Hub) Step() []rules.Event {
	var events []rules.Event
	h.Sequence(func() {
		events = h.World.Tick()
		packets := h.translator.Packets(h.World.TickCount(), events)
		for _, p := range packets {
			h.broadcast(nil, p.Message, p.Data)
		}
	})
	return events
}

// Record saves a result, errors are logged and otherwise ignored.
func (h *Hub) Record(r scores.Result) {
	if h.Scores == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := h.Scores.Record(ctx, r); err != nil {
		log.WithError(err).WithField("snake", r.SnakeID).Error("unable to record result")
	}
}

// Serve runs a connection until it is closed. It blocks on the reading side.
func (h *Hub) Serve(ws *websocket.Conn) {
	c := newConn(h, ws)
	q := h.Clients.Add(c)
	c.setState(StateAwaitingJoin)
	c.logger.Info("client connected")

	go c.writePump(q)

	if h.opts.JoinTimeout > 0 {
		timer := time.AfterFunc(h.opts.JoinTimeout, func() {
			if c.State() == StateAwaitingJoin {
				c.logger.Info("join timeout")
				c.ws.Close()
			}
		})
		defer timer.Stop()
	}

	c.readPump()
	c.close()
}

// SpawnBot adds a bot snake and announces it like a player.
func (h *Hub) SpawnBot(name string) rules.Snake {
	var s rules.Snake
	h.Sequence(func() {
		s = h.World.SpawnSnake(name, true)
		h.broadcast(nil, protocol.PlayerJoined, s)
	})
	return s
}

func (h *Hub) join(c *Conn, name string) rules.Snake {
	var s rules.Snake
	h.Sequence(func() {
		s = h.World.SpawnSnake(cleanName(name), false)
		c.joined(s.ID)

		h.send(c, protocol.PlayerInit, s)
		h.broadcast(nil, protocol.PlayerJoined, s)
		for _, p := range protocol.Snapshot(s.ID, h.World.Snakes(), h.World.Foods(), h.World.Leaderboard()) {
			h.send(c, p.Message, p.Data)
		}
	})
	c.logger.WithField("snake", s.ID).WithField("name", s.Name).Info("player joined")
	return s
}

func (h *Hub) leave(c *Conn) {
	var removed *rules.Snake
	h.Sequence(func() {
		h.Clients.Remove(c)
		id := c.SnakeID()
		if id == "" {
			return
		}
		s, ok := h.World.RemoveSnake(id)
		if !ok {
			return
		}
		removed = s
		h.broadcast(nil, protocol.PlayerLeft, protocol.PlayerLeftData{ID: id})
	})
	if removed == nil {
		return
	}
	c.logger.WithField("snake", removed.ID).WithField("score", removed.Score).Info("player left")
	h.Record(scores.NewResult(removed.Clone(), scores.CauseLeft))
}

func (h *Hub) send(c *Conn, message string, data interface{}) {
	frame, err := protocol.Encode(message, data)
	if err != nil {
		log.WithError(err).Error("unable to encode packet")
		return
	}
	h.Clients.Send(c, frame)
}

// broadcast sends to everyone but skip, skip may be nil.
func (h *Hub) broadcast(skip *Conn, message string, data interface{}) {
	frame, err := protocol.Encode(message, data)
	if err != nil {
		log.WithError(err).Error("unable to encode packet")
		return
	}
	h.Clients.BroadcastExcept(skip, frame)
}

func cleanName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		name = string([]rune(name)[:maxNameLength])
	}
	return name
}
