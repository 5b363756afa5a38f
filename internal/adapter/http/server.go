package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/crop-recommender/internal/domain"
	"github.com/couchcryptid/crop-recommender/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether a dependency is ready to serve traffic.
type ReadinessChecker = sharedobs.ReadinessChecker

// RequestIDHeader carries the per-request ID on every response.
const RequestIDHeader = "X-Request-ID"

// Server exposes the recommendation API alongside health, readiness, and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	metrics    *observability.Metrics
	catalog    atomic.Pointer[domain.Catalog]
	checks     []ReadinessChecker
}

// NewServer creates an HTTP server with /recommend, /crops, /healthz, /readyz,
// and /metrics routes. The server reports ready once a catalog is attached
// and every extra check passes.
func NewServer(addr string, logger *slog.Logger, metrics *observability.Metrics, checks ...ReadinessChecker) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:  logger,
		metrics: metrics,
		checks:  checks,
	}

	mux.HandleFunc("GET /recommend", s.withRequestID(s.handleRecommend))
	mux.HandleFunc("GET /crops", s.withRequestID(s.handleCrops))
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(s))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// SetCatalog attaches the catalog served by /recommend and /crops. The
// catalog must not be mutated afterwards.
func (s *Server) SetCatalog(c *domain.Catalog) {
	s.catalog.Store(c)
}

// CheckReadiness reports an error until a catalog is attached or while any
// extra check fails.
func (s *Server) CheckReadiness(ctx context.Context) error {
	if s.catalog.Load() == nil {
		return errors.New("catalog not loaded")
	}
	for _, c := range s.checks {
		if err := c.CheckReadiness(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
