// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                 liveness, plus a cache ping when supported
//	POST /v1/layouts              layout JSON plus requested artifacts
//	POST /v1/render/{format}      a single artifact as its native content type
//
// Each request builds its own grid; the server keeps no layout state beyond
// the pipeline cache.
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

	"github.com/matzehuels/flexgrid/pkg/pipeline"
)

const (
	// MaxBodyBytes caps the size of a request body.
	MaxBodyBytes = 4 << 20

	shutdownTimeout = 10 * time.Second
)

// Config holds the server dependencies.
type Config struct {
	Addr   string
	Runner *pipeline.Runner
	Logger *log.Logger
}

// Server serves layout requests.
type Server struct {
	addr   string
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server. A nil runner gets an uncached one.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	s := &Server{
		addr:   cfg.Addr,
		runner: cfg.Runner,
		logger: cfg.Logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layouts", s.handleLayout)
		r.Post("/render/{format}", s.handleRender)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", s.addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
