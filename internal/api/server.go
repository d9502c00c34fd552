// Package api serves the transforms, the signature utility and the
// activity trail over HTTP.
package api

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/snakecodec/internal/activity"
	"github.com/matzehuels/snakecodec/pkg/codec"
	"github.com/matzehuels/snakecodec/pkg/observability"
)

// DefaultAddr is the listen address used when Config.Addr is empty.
const DefaultAddr = "127.0.0.1:8320"

// maxBodyBytes caps request bodies. Texts are further limited by
// Config.MaxTextLength.
const maxBodyBytes = 1 << 20

// Config holds configuration for the API server.
type Config struct {
	Addr string

	// Recorder receives successful operations. Nil disables recording and
	// the history and journal routes answer with empty results.
	Recorder *activity.Recorder

	// Defaults fill request fields the client leaves out.
	Defaults codec.Params

	MaxTextLength int
	Logger        *log.Logger
}

// Server is the HTTP API server.
type Server struct {
	cfg    Config
	logger *log.Logger
}

// NewServer creates a server. A nil logger discards request logs.
func NewServer(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Defaults.Shift == 0 {
		cfg.Defaults.Shift = 3
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{cfg: cfg, logger: logger}
}

// Handler returns the router with every route and middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		s.requestLogger,
		middleware.Recoverer,
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/transforms", s.handleListTransforms)
		r.Post("/transforms/{name}/{direction}", s.handleTransform)
		r.Post("/pipelines", s.handlePipeline)
		r.Post("/detect", s.handleDetect)
		r.Post("/sign", s.handleSign)
		r.Post("/verify", s.handleVerify)
		r.Get("/history", s.handleListHistory)
		r.Delete("/history", s.handleClearHistory)
		r.Delete("/history/{id}", s.handleRemoveHistory)
		r.Get("/journal", s.handleJournal)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: errorDetail{Code: "NOT_FOUND", Message: "no route for " + r.URL.Path}})
	})
	return r
}

// Serve starts the server and blocks until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("starting API server", "addr", "http://"+s.cfg.Addr)

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// requestLogger logs every request and reports it to the HTTP hooks.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		took := time.Since(start)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"took", took.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
		observability.HTTP().OnRequest(r.Context(), r.Method, route, status, took)
	})
}
