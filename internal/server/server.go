// Package server exposes the gift search over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/giftscout/giftscout/internal/model"
	"github.com/giftscout/giftscout/internal/service"
)

// GiftFinder is the orchestrator surface the handlers need.
type GiftFinder interface {
	FindGifts(ctx context.Context, criteria model.Criteria) []model.Listing
}

// Server wires the extractor, finder, and store behind the HTTP API.
type Server struct {
	httpServer *http.Server
	extractor  service.Extractor
	finder     GiftFinder
	store      service.Storage
	logger     *slog.Logger
}

// New builds a Server listening on addr.
func New(addr string, extractor service.Extractor, finder GiftFinder, store service.Storage) *Server {
	s := &Server{
		extractor: extractor,
		finder:    finder,
		store:     store,
		logger:    slog.Default().With("component", "server"),
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/find-gifts", s.handleFindGifts)
		r.Get("/gifts/{id}", s.handleGetGift)
	})

	return r
}

// Handler exposes the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
