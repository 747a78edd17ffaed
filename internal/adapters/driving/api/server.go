// Package api provides the HTTP adapter for kgingest: document upload, URL
// ingestion, stored-document access, type detection, health and metrics.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/custodia-labs/kgingest/internal/core/ports/driving"
	"github.com/custodia-labs/kgingest/internal/metrics"
)

// DefaultMaxUploadBytes caps multipart uploads.
const DefaultMaxUploadBytes = 32 << 20

const shutdownTimeout = 10 * time.Second

// ErrMissingIngestService is returned when the ingest service is not provided.
var ErrMissingIngestService = errors.New("api: ingest service is required")

// Ports aggregates the driving ports the HTTP API calls.
type Ports struct {
	Ingest   driving.IngestService
	Document driving.DocumentService
}

// Server is the HTTP API.
type Server struct {
	ports          Ports
	logger         *zap.Logger
	metrics        *metrics.Metrics
	mcp            http.Handler
	maxUploadBytes int64
	validate       bool
	errorHandlers  []errorHandler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics instruments requests and serves GET /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithMCP mounts an MCP streamable HTTP handler at /mcp.
func WithMCP(h http.Handler) Option {
	return func(s *Server) { s.mcp = h }
}

// WithMaxUploadBytes caps the size of multipart uploads.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithUploadValidation toggles the upload type check. It is on by default.
func WithUploadValidation(on bool) Option {
	return func(s *Server) { s.validate = on }
}

// NewServer creates an HTTP API server.
func NewServer(ports Ports, opts ...Option) (*Server, error) {
	if ports.Ingest == nil {
		return nil, ErrMissingIngestService
	}

	s := &Server{
		ports:          ports,
		logger:         zap.NewNop(),
		maxUploadBytes: DefaultMaxUploadBytes,
		validate:       true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.errorHandlers = defaultErrorHandlers()
	return s, nil
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(requestLogger(s.logger))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware())
	}

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	if s.mcp != nil {
		r.Handle("/mcp", s.mcp)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/detect", s.handleDetect)

		r.Route("/data/documents", func(r chi.Router) {
			r.Post("/", s.handleUpload)
			r.Get("/", s.handleList)
			r.Post("/url", s.handleIngestURL)
			r.Get("/{id}", s.handleGet)
			r.Delete("/{id}", s.handleDelete)
		})
	})

	return r
}

// ListenAndServe serves the API on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
