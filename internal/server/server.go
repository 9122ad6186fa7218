package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/streakboard/internal/summary"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Summarizer computes an activity summary for one set of credentials.
// *summary.Service satisfies this.
type Summarizer interface {
	Summarize(ctx context.Context, username, password string) (*summary.Summary, error)
}

var _ Summarizer = (*summary.Service)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	summary  Summarizer
	log      *slog.Logger
	manifest []byte
	router   chi.Router
}

// New creates a new Server with all routes configured. requestTimeout
// bounds the total time one summary request may spend, including every
// upstream Peloton call.
func New(svc Summarizer, requestTimeout time.Duration, log *slog.Logger) *Server {
	s := &Server{
		summary: svc,
		log:     log,
		router:  chi.NewRouter(),
	}
	s.routes(requestTimeout)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes(requestTimeout time.Duration) {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(RequestTimeout(requestTimeout))

	s.router.Post("/api/v1/summary", s.handleSummary)
	s.router.Get("/plugin.json", s.handleManifest)
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// SetManifest installs the plugin manifest served at /plugin.json.
func (s *Server) SetManifest(manifest []byte) {
	s.manifest = manifest
}
