// Package server exposes the banner pipeline over HTTP.
//
// Routes:
//
//	GET  /banner/{type}.{format}?key=value...   render a banner
//	POST /saved/save/{type}?key=value...        save banner settings
//	GET  /saved/{mnemonic}.{format}             render a saved banner
//	GET  /healthz                               liveness check
//
// Query parameters are passed to the pipeline as the settings map. Errors
// are reported as JSON with the status from errors.HTTPStatus.
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/config"
	"github.com/mcbanners/banners/pkg/pipeline"
	"github.com/mcbanners/banners/pkg/render/sink"
	"github.com/mcbanners/banners/pkg/saved"
)

// Pipeline renders, saves and recalls banners.
type Pipeline interface {
	Render(ctx context.Context, t backend.BannerType, settings map[string]string, format sink.Format) (*pipeline.Result, error)
	Save(ctx context.Context, t backend.BannerType, owner string, settings map[string]string) (*saved.Banner, error)
	Recall(ctx context.Context, mnemonic string, format sink.Format) (*pipeline.Result, error)
}

// OwnerHeader carries the optional owner recorded with a saved banner.
const OwnerHeader = "X-Banner-Owner"

// Server is the HTTP adapter over a [Pipeline].
type Server struct {
	pipeline Pipeline
	router   *chi.Mux
	logger   *log.Logger
	maxAge   time.Duration
}

// Option configures a [Server].
type Option func(*Server)

// WithMaxAge sets the Cache-Control max-age sent with rendered images.
func WithMaxAge(d time.Duration) Option {
	return func(s *Server) { s.maxAge = d }
}

// New creates a server over p.
func New(p Pipeline, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		pipeline: p,
		router:   chi.NewRouter(),
		logger:   logger,
		maxAge:   time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/banner/{type}.{format}", s.handleRender)

	s.router.Route("/saved", func(r chi.Router) {
		r.Post("/save/{type}", s.handleSave)
		r.Get("/{mnemonic}.{format}", s.handleRecall)
	})

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no such route", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", s.logger)
	})
}

// requestLogger logs one line per request once the response is written.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		}
		if status >= http.StatusInternalServerError {
			s.logger.Warn("request", fields...)
			return
		}
		s.logger.Info("request", fields...)
	})
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts down
// gracefully within cfg.ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
