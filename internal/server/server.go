// Package server exposes the node registry over HTTP for a node-graph
// host: schema discovery for the UI and a run endpoint per node.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/noteflow/pitch2midi/internal/node"
)

// Config holds server configuration
type Config struct {
	Port     int
	Registry *node.Registry
}

// Server is the HTTP host surface
type Server struct {
	config   Config
	router   *chi.Mux
	registry *node.Registry
	logger   *slog.Logger
}

// New creates a new server
func New(cfg Config) *Server {
	s := &Server{
		config:   cfg,
		router:   chi.NewRouter(),
		registry: cfg.Registry,
		logger:   slog.New(slog.NewTextHandler(os.Stdout, nil)),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	r := s.router

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/nodes", s.handleListNodes)
	r.Post("/nodes/{name}", s.handleRunNode)
}

// Handler returns the router, used directly in tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server and blocks until shutdown
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // inference runs inline
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		s.logger.Info("shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", slog.Any("error", err))
		}
		close(done)
	}()

	s.logger.Info("server starting", slog.Int("port", s.config.Port))

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}

	<-done
	return nil
}
