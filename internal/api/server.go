// Package api exposes the touchpad HTTP surface: the WebSocket event stream,
// the embedded touchpad page and a small diagnostics API.
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"github.com/kataras/golog"

	"remotepad/internal/config"
	"remotepad/internal/gesture"
	"remotepad/internal/network"
	"remotepad/internal/protocol"
	"remotepad/internal/queue"
	"remotepad/internal/webui"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Server owns the HTTP listener and the producer side of the event queue.
type Server struct {
	cfgMgr   *config.Manager
	queue    *queue.Unbounded[protocol.ClientEvent]
	clock    gesture.Clock
	shared   *gesture.SharedClock
	log      *golog.Logger
	sessions atomic.Int64
	httpSrv  *http.Server
}

// NewServer creates the API server. The queue's consumer side is expected to
// be drained by the gesture interpreter.
func NewServer(cfgMgr *config.Manager, q *queue.Unbounded[protocol.ClientEvent], clock gesture.Clock, shared *gesture.SharedClock) *Server {
	return &Server{
		cfgMgr: cfgMgr,
		queue:  q,
		clock:  clock,
		shared: shared,
		log:    golog.Child("[api]"),
	}
}

// Handler builds the router. Split out from Start so tests can mount it on an
// httptest server.
func (s *Server) Handler() http.Handler {
	cfg := s.cfgMgr.Get()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/health", s.handleHealth)
	r.Get("/api/status", s.handleStatus)
	r.Handle("/*", webui.Handler(cfg.General.StaticDir))
	return r
}

// Start listens and serves until Shutdown. Blocking.
func (s *Server) Start() error {
	cfg := s.cfgMgr.Get()

	// Explicit tcp4 on 0.0.0.0 to avoid IPv6-only binding issues on Windows.
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.General.ListenPort)
	ln, err := net.Listen("tcp4", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	if ips, err := network.LocalIPs(); err == nil {
		for _, ip := range ips {
			s.log.Infof("touchpad available at http://%s:%d/", ip, cfg.General.ListenPort)
		}
	}

	s.httpSrv = &http.Server{Handler: s.Handler()}
	if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the listener and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// SessionCount reports the number of open WebSocket sessions.
func (s *Server) SessionCount() int {
	return int(s.sessions.Load())
}

// handleHealth handles GET /health (for monitoring).
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleStatus handles GET /api/status with pipeline diagnostics. The
// last-processed timestamp is the shared clock's only cross-goroutine reader.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"sessions":          s.sessions.Load(),
		"queued_events":     s.queue.Len(),
		"last_processed_ms": s.shared.LastProcessedMillis(),
		"uptime_ms":         s.clock.NowMillis(),
	})
}
