// Package server exposes the advisor over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/abhisek/uniguide/internal/advisor"
	"github.com/abhisek/uniguide/internal/metrics"
	"github.com/abhisek/uniguide/internal/mlmodel"
	"github.com/abhisek/uniguide/internal/store"
)

// maxBodyBytes bounds a submitted record.
const maxBodyBytes = 1 << 20

// Deps are the collaborators the HTTP API serves from.
type Deps struct {
	Advisor *advisor.Service
	Events  store.EventRepo // nil disables the history endpoints
	Model   mlmodel.Source
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Server exposes the advisor, its history and model info over HTTP.
type Server struct {
	deps Deps
	log  *slog.Logger
}

// New returns a Server. A nil Logger discards access and error logs.
func New(deps Deps) *Server {
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{deps: deps, log: log}
}

// Handler returns the routed API wrapped in access logging and panic
// recovery.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	s.route(r, "/healthz", s.health, http.MethodGet)
	s.route(r, "/api/v1/assessments", s.createAssessment, http.MethodPost)
	s.route(r, "/api/v1/assessments", s.listAssessments, http.MethodGet)
	s.route(r, "/api/v1/assessments/{id}", s.getAssessment, http.MethodGet)
	s.route(r, "/api/v1/model", s.modelInfo, http.MethodGet)
	if s.deps.Metrics != nil {
		r.Handle("/metrics", s.deps.Metrics.Handler()).Methods(http.MethodGet)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	var h http.Handler = r
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{s.log}))(h)
	h = handlers.CustomLoggingHandler(io.Discard, h, s.accessLog)
	return h
}

func (s *Server) route(r *mux.Router, path string, fn http.HandlerFunc, method string) {
	r.Handle(path, s.deps.Metrics.WrapHandler(path, fn)).Methods(method)
}

func (s *Server) accessLog(_ io.Writer, p handlers.LogFormatterParams) {
	s.log.Info("http request",
		"method", p.Request.Method,
		"path", p.URL.Path,
		"status", p.StatusCode,
		"bytes", p.Size,
		"remote", p.Request.RemoteAddr)
}

type recoveryLogger struct {
	log *slog.Logger
}

func (l recoveryLogger) Println(v ...any) {
	l.log.Error("handler panic", "error", fmt.Sprint(v...))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
