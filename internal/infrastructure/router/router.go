package router

import (
	"net/http"
	"time"

	"chatspace-exporter/pkg/logger"
)

// Router registers HTTP handlers by method and path pattern
type Router struct {
	mux      *http.ServeMux
	patterns []string
	logger   logger.Logger
}

// NewRouter creates a new router
func NewRouter(logger logger.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

// Register registers a handler for a pattern such as "GET /export"
func (r *Router) Register(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
	r.patterns = append(r.patterns, pattern)
	r.logger.Info("Registered route", "pattern", pattern)
}

// RegisterFunc registers a handler function for a pattern
func (r *Router) RegisterFunc(pattern string, handler http.HandlerFunc) {
	r.Register(pattern, handler)
}

// Patterns returns the registered patterns in registration order
func (r *Router) Patterns() []string {
	return append([]string(nil), r.patterns...)
}

// Handler returns the routes wrapped with request logging
func (r *Router) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		r.mux.ServeHTTP(rec, req)

		r.logger.Debug("Handled request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}
