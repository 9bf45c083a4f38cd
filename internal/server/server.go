// Package server exposes the chart pipeline over HTTP.
//
// Routes:
//
//	POST   /v1/layout                 lay out a schedule, return the layout JSON
//	POST   /v1/charts                 store a chart, return its id
//	GET    /v1/charts                 list stored charts, newest first
//	GET    /v1/charts/{id}            layout JSON of a stored chart
//	GET    /v1/charts/{id}.{ext}      rendered artifact (svg, png, pdf, txt, dot, json, flow.svg)
//	DELETE /v1/charts/{id}            delete a stored chart
//	GET    /healthz                   liveness probe with build info
//
// Errors are returned as {"error": {"code": ..., "message": ...}} with a
// status derived from the error code.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/laneplot/pkg/buildinfo"
	"github.com/matzehuels/laneplot/pkg/pipeline"
	"github.com/matzehuels/laneplot/pkg/store"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 4 << 20

// Config holds the dependencies of a Server.
type Config struct {
	// Runner executes the pipeline. Defaults to an uncached runner.
	Runner *pipeline.Runner
	// Store persists charts. Defaults to an in-memory store.
	Store store.Store
	// Logger receives request logs. Defaults to log.Default().
	Logger *log.Logger
}

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New returns a server for cfg, filling unset dependencies with defaults.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	return &Server{runner: cfg.Runner, store: cfg.Store, logger: cfg.Logger}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Route("/charts", func(r chi.Router) {
			r.Post("/", s.handleCreateChart)
			r.Get("/", s.handleListCharts)
			r.Get("/{ref}", s.handleGetChart)
			r.Delete("/{ref}", s.handleDeleteChart)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases the store and the runner's cache.
func (s *Server) Close() error {
	return stderrors.Join(s.store.Close(), s.runner.Close())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}
