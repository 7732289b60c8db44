package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"chatspace-exporter/templates"
)

var (
	// ErrInvalidState is returned when the OAuth callback state does not match the session
	ErrInvalidState = errors.New("missing or invalid OAuth state parameter")
	// ErrNotAuthenticated is returned by API routes called without a signed-in session
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Recover turns a panic inside next into an error page
func (h *Handler) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				stack := string(debug.Stack())
				h.metrics.ErrorsCount.WithLabelValues("panic").Inc()
				h.logger.Error("Handler panicked", "path", r.URL.Path, "panic", v, "stack", stack)

				h.renderPage(w, http.StatusInternalServerError, templates.PageError, templates.ErrorData{
					Title:   "Unexpected error",
					Message: fmt.Sprint(v),
					Trace:   strings.Split(strings.TrimSpace(stack), "\n"),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// errorTrace lists err and every error it wraps, outermost first
func errorTrace(err error) []string {
	var trace []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		trace = append(trace, fmt.Sprintf("%T: %v", e, e))
	}
	return trace
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, title string, err error, withTrace bool) {
	h.logger.Error(title, "path", r.URL.Path, "error", err)

	data := templates.ErrorData{
		Title:   title,
		Message: err.Error(),
	}
	if withTrace {
		data.Trace = errorTrace(err)
	}
	h.renderPage(w, status, templates.PageError, data)
}

func (h *Handler) renderPage(w http.ResponseWriter, status int, page string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.pages.Render(w, page, data); err != nil {
		h.logger.Error("Failed to render page", "page", page, "error", err)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}
