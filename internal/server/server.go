// Package server exposes conversion and section editing over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/tengjizhang/linkconv/internal/emit"
	"github.com/tengjizhang/linkconv/internal/metrics"
	"github.com/tengjizhang/linkconv/internal/store"
)

const maxBodyBytes = 4 << 20

type Server struct {
	router     *chi.Mux
	store      *store.Store
	converter  *emit.Converter
	recorder   metrics.Recorder
	registry   *prom.Registry
	logger     *slog.Logger
	httpServer *http.Server
}

// NewServer wires the API routes. When reg is nil no /metrics endpoint is
// mounted and nothing is recorded.
func NewServer(st *store.Store, converter *emit.Converter, reg *prom.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		router:    chi.NewRouter(),
		store:     st,
		converter: converter,
		recorder:  metrics.NoopRecorder{},
		registry:  reg,
		logger:    logger,
	}
	if reg != nil {
		s.recorder = metrics.NewPrometheusRecorder(reg)
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
		r.Get("/formats", s.handleFormats)
		r.Get("/sections", s.handleListSections)
		r.Post("/sections", s.handleCreateSection)
		r.Route("/sections/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSection)
			r.Put("/", s.handleUpdateSection)
			r.Delete("/", s.handleDeleteSection)
			r.Post("/links", s.handleInsertLink)
			r.Get("/preview", s.handlePreview)
			r.Get("/download/{format}", s.handleDownload)
		})
	})
	if s.registry != nil {
		s.router.Handle("/metrics", metrics.HTTPHandler(s.registry))
	}
}

func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", addr, "parser", s.converter.Transformer().Name())
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Shutting down server")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondStoreError maps sentinel errors to status codes.
func (s *Server) respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error("Request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
