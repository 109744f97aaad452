// Package server exposes the layout pipeline and the settings and toggle
// stores over HTTP.
//
// # Routes
//
//	GET    /healthz
//	POST   /v1/layout
//	GET    /v1/courses/{courseID}/settings
//	PUT    /v1/courses/{courseID}/settings
//	GET    /v1/courses/{courseID}/toggles/{userID}
//	PUT    /v1/courses/{courseID}/toggles/{userID}
//	DELETE /v1/courses/{courseID}/toggles/{userID}
//	POST   /v1/truncate
//
// Errors are JSON objects {"error": message, "code": CODE}. Validation codes
// map to 400, not-found codes to 404 and store failures to 503.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
	"github.com/uofr/moodle-format-topcoll/pkg/pipeline"
	"github.com/uofr/moodle-format-topcoll/pkg/settings"
	"github.com/uofr/moodle-format-topcoll/pkg/togglestate"
)

// Defaults for the HTTP server.
const (
	DefaultAddr     = ":8080"
	shutdownTimeout = 10 * time.Second
	maxBodyBytes    = 1 << 20
)

// Config wires a Server to its collaborators.
type Config struct {
	Addr     string
	Runner   *pipeline.Runner
	Settings settings.Store
	Toggles  togglestate.Store
	// Defaults are served for courses with no stored settings.
	Defaults course.Settings
	Logger   *log.Logger
	// Clock overrides the wall clock for layout requests without "now".
	Clock func() time.Time
}

// Server is the HTTP front end.
type Server struct {
	cfg Config
}

// New creates a server, filling unset collaborators with in-memory ones.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Settings == nil {
		cfg.Settings = settings.NewMemoryStore()
	}
	if cfg.Toggles == nil {
		cfg.Toggles = togglestate.NewMemoryStore()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Settings, cfg.Logger)
	}
	if cfg.Defaults == (course.Settings{}) {
		cfg.Defaults = course.DefaultSettings()
	}
	return &Server{cfg: cfg}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(requestLogger(s.cfg.Logger))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/truncate", s.handleTruncate)
		r.Route("/courses/{courseID}", func(r chi.Router) {
			r.Get("/settings", s.handleGetSettings)
			r.Put("/settings", s.handlePutSettings)
			r.Get("/toggles/{userID}", s.handleGetToggles)
			r.Put("/toggles/{userID}", s.handlePutToggles)
			r.Delete("/toggles/{userID}", s.handleDeleteToggles)
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	s.cfg.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the runner and the toggle store. The runner closes the
// settings store it was built with.
func (s *Server) Close() error {
	err := s.cfg.Runner.Close()
	if terr := s.cfg.Toggles.Close(); terr != nil && err == nil {
		err = terr
	}
	return err
}
