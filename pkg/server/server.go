package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-pystarter/internal/openapi"
	"github.com/goliatone/go-pystarter/pkg/orchestrator"
	"github.com/goliatone/go-pystarter/pkg/renderers/vanilla"
)

const (
	maxBodyBytes      = 64 << 10
	readHeaderTimeout = 10 * time.Second
)

// Option customises the server.
type Option func(*Server)

// WithLogger sets the request logger. Defaults to the apex/log package logger.
func WithLogger(logger log.Interface) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithValidator replaces the validator built from the embedded document.
func WithValidator(v *openapi.Validator) Option {
	return func(s *Server) {
		s.validator = v
	}
}

// WithRenderer names the presenter used by the form page.
func WithRenderer(name string) Option {
	return func(s *Server) {
		s.renderer = name
	}
}

// WithTheme sets the theme and variant used when a request does not pick one.
func WithTheme(name, variant string) Option {
	return func(s *Server) {
		s.themeName = name
		s.themeVariant = variant
	}
}

// WithMetricsRegistry registers request metrics with reg instead of a
// private registry.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// Server holds the HTTP handlers. Every request recomputes the full view from
// its own inputs; no state is shared between requests apart from the
// orchestrator's snippet cache.
type Server struct {
	orch         *orchestrator.Orchestrator
	validator    *openapi.Validator
	logger       log.Interface
	renderer     string
	themeName    string
	themeVariant string
	registry     *prometheus.Registry
	metrics      *metrics
	handler      http.Handler
}

// New builds the server and its route table.
func New(ctx context.Context, orch *orchestrator.Orchestrator, options ...Option) (*Server, error) {
	if orch == nil {
		return nil, errors.New("server: orchestrator is required")
	}

	s := &Server{
		orch:     orch,
		logger:   log.Log,
		renderer: "vanilla",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.validator == nil {
		v, err := openapi.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		s.validator = v
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	m, err := newMetrics(s.registry)
	if err != nil {
		return nil, fmt.Errorf("server: register metrics: %w", err)
	}
	s.metrics = m

	s.handler = s.instrument(s.routes())
	return s, nil
}

// Handler returns the root handler with logging and metrics applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /api/render", s.handleRender)
	mux.HandleFunc("GET /api/normalize", s.handleNormalize)
	mux.HandleFunc("GET /openapi.yaml", s.handleDocument)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(vanilla.AssetsFS())))
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

// ListenAndServe runs the server on addr until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, grace time.Duration) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	s.logger.WithField("addr", addr).Info("listening")

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	s.logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
