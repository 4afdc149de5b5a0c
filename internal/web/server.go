// Package web serves the dashboard tables and the track predictor as a JSON
// API. Charting is the consumer's job; every endpoint returns the data a
// panel renders, not markup.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jmhart/spotify-trend-tools/internal/analysis"
	"github.com/jmhart/spotify-trend-tools/internal/dataset"
)

// DefaultAddr is the default listen address.
const DefaultAddr = "127.0.0.1:8080"

// Config holds server dependencies.
type Config struct {
	Addr string
	Data *dataset.Dir
	// Predictor may be nil when no raw dataset has been imported; the
	// predict endpoint then reports 503 instead of a score.
	Predictor *analysis.Predictor
}

// Server is the JSON API server.
type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
}

// NewServer wires the routes.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Data == nil {
		return nil, fmt.Errorf("creating server: no data directory")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	handlers := NewHandlers(cfg.Data, cfg.Predictor)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/overview", handlers.Overview)
		r.Get("/temporal", handlers.Temporal)
		r.Get("/genres", handlers.Genres)
		r.Get("/decades", handlers.Decades)
		r.Get("/artists", handlers.Artists)
		r.Get("/correlations", handlers.Correlations)
		r.Get("/clusters", handlers.Clusters)
		r.Get("/stat-tests", handlers.StatTests)
		r.Post("/predict", handlers.Predict)
	})

	return &Server{
		router: r,
		server: &http.Server{
			Addr:         cfg.Addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		handlers: handlers,
	}, nil
}

// Router exposes the handler tree, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until the context is cancelled or an interrupt arrives, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on http://%s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-stop:
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
