// Package http exposes a read-only view of a controller over HTTP:
// health, status, the state machine diagram, Prometheus metrics and an
// SSE stream of lifecycle events. It offers no run control.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/khshaikh19/sortviz"
	"github.com/khshaikh19/sortviz/internal/logging"
	"github.com/khshaikh19/sortviz/internal/presentation/graph"
	"github.com/khshaikh19/sortviz/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatusProvider is the read side of a controller.
type StatusProvider interface {
	Status() sortviz.Status
}

// Server serves the read-only endpoints.
type Server struct {
	Status   StatusProvider
	Streams  *StreamManager
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithGatherer sets the registry served on /metrics (default: prometheus.DefaultGatherer).
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewServer creates a server over status.
func NewServer(status StatusProvider, opts ...Option) *Server {
	s := &Server{
		Status:   status,
		Streams:  NewStreamManager(),
		Gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}
	s.Streams.logger = s.Logger
	return s
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/status", s.GetStatus)
	r.Get("/graph", s.GetGraph)
	r.Get("/events", s.SubscribeEvents)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	return r
}

// Hooks returns lifecycle hooks that publish to SSE subscribers.
func (s *Server) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(_ context.Context, e *domain.RunEvent) {
			s.publish("run_start", e)
		},
		OnRunFinish: func(_ context.Context, e *domain.RunEvent) {
			s.publish("run_finish", e)
		},
		OnStateChange: func(_ context.Context, e *domain.StateEvent) {
			s.publish("state", e)
		},
	}
}

func (s *Server) publish(kind string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.Logger.Error("failed to encode event", "event", kind, "error", err)
		return
	}
	s.Streams.Broadcast(Message{Event: kind, Data: string(data)})
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, map[string]string{
		"app":     "sortviz",
		"version": strings.TrimSpace(sortviz.Version),
	})
}

// GetStatus handles the GET /status request.
func (s *Server) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, s.Status.Status())
}

// GetGraph handles the GET /graph request: the state machine as Mermaid,
// with the current state highlighted.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.StateDiagram(&graph.Overlay{Current: s.Status.Status().State}))
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Debug("SSE client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
