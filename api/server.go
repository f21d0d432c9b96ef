// Package api is the HTTP surface of the arena: the websocket endpoint and a
// few read only JSON views.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"github.com/battlesnakeio/arena/hub"
	"github.com/battlesnakeio/arena/rules"
	"github.com/battlesnakeio/arena/scores"
	"github.com/battlesnakeio/arena/version"
)

const (
	defaultScoresLimit = 10
	maxScoresLimit     = 100
)

// Server is the HTTP server.
type Server struct {
	hs       *http.Server
	hub      *hub.Hub
	store    scores.Store
	upgrader websocket.Upgrader
}

// Status is the /status response.
type Status struct {
	Version     string      `json:"version"`
	Connections int         `json:"connections"`
	World       rules.Stats `json:"world"`
}

// New creates a server for h listening on addr. store may be nil.
func New(addr string, h *hub.Hub, store scores.Store) *Server {
	s := &Server{
		hub:   h,
		store: store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// browsers connect from wherever the client is hosted
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	router := httprouter.New()
	router.GET("/ws", s.serveWS)
	router.GET("/leaderboard", s.leaderboard)
	router.GET("/scores", s.scores)
	router.GET("/status", s.status)
	router.GET("/healthz", s.healthz)

	s.hs = &http.Server{
		Addr:    addr,
		Handler: cors.Default().Handler(router),
	}
	return s
}

// WaitForExit serves until the server is shut down.
func (s *Server) WaitForExit() error {
	log.Infof("arena listening on %s", s.hs.Addr)
	err := s.hs.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Handler returns the routed handler without listening.
func (s *Server) Handler() http.Handler {
	return s.hs.Handler
}

// Shutdown stops accepting connections and waits for handlers to return.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.hs.Shutdown(ctx)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	s.hub.Serve(ws)
}

func (s *Server) leaderboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	entries := s.hub.World.Leaderboard()
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func (s *Server) scores(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit := defaultScoresLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > maxScoresLimit {
		limit = maxScoresLimit
	}

	results := []scores.Result{}
	if s.store != nil {
		top, err := s.store.Top(r.Context(), limit)
		if err != nil {
			log.WithError(err).Error("unable to read scores")
			writeError(w, http.StatusInternalServerError, "unable to read scores")
			return
		}
		results = top
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"scores": results})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, Status{
		Version:     version.Version,
		Connections: s.hub.Clients.Len(),
		World:       s.hub.World.Stats(),
	})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("unable to write response")
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
