package handler

import (
	"context"
	"fmt"
	"net/http"

	"chatspace-exporter/internal/domain/entity"
	"chatspace-exporter/templates"

	"github.com/google/uuid"
)

// Home renders the landing page
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFromContext(r.Context())

	data := templates.HomeData{Worksheet: h.cfg.Worksheet}
	if session.Authenticated() {
		data.Email = session.Email
	}
	h.renderPage(w, http.StatusOK, templates.PageHome, data)
}

// Login stores a fresh state in the session and redirects to the consent screen
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFromContext(r.Context())

	session.OAuthState = uuid.NewString()
	if err := h.saveSession(r.Context(), session); err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "Authentication error", err, false)
		return
	}

	http.Redirect(w, r, h.oauth.AuthCodeURL(session.OAuthState), http.StatusFound)
}

// Callback completes the authorization-code flow and continues to the export
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := SessionFromContext(ctx)
	query := r.URL.Query()

	if providerErr := query.Get("error"); providerErr != "" {
		h.metrics.LoginsTotal.WithLabelValues("denied").Inc()
		h.renderError(w, r, http.StatusBadRequest, "Authentication error", fmt.Errorf("authorization failed: %s", providerErr), false)
		return
	}

	expected := session.OAuthState
	if expected == "" || query.Get("state") != expected {
		h.metrics.LoginsTotal.WithLabelValues("invalid_state").Inc()
		h.renderError(w, r, http.StatusBadRequest, "Authentication error", ErrInvalidState, false)
		return
	}
	// a state is good for one callback only
	session.OAuthState = ""

	token, err := h.oauth.ExchangeCode(ctx, query.Get("code"))
	if err != nil {
		h.metrics.LoginsTotal.WithLabelValues("failed").Inc()
		h.keepClearedState(ctx, session)
		h.renderError(w, r, http.StatusInternalServerError, "Authentication error", err, false)
		return
	}

	email, err := h.oauth.FetchEmail(ctx, token)
	if err != nil {
		h.metrics.LoginsTotal.WithLabelValues("failed").Inc()
		h.keepClearedState(ctx, session)
		h.renderError(w, r, http.StatusInternalServerError, "Authentication error", err, false)
		return
	}

	session.Token = token
	session.Email = email
	if err := h.saveSession(ctx, session); err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "Authentication error", err, false)
		return
	}

	h.metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.logger.Info("User authenticated", "email", email)

	http.Redirect(w, r, "/export", http.StatusFound)
}

// keepClearedState persists a session whose state was consumed by a failed callback
func (h *Handler) keepClearedState(ctx context.Context, session *entity.Session) {
	if err := h.saveSession(ctx, session); err != nil {
		h.logger.Warn("Failed to save session", "sessionID", session.ID, "error", err)
	}
}

type statusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
}

// Status reports whether the session is authenticated
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFromContext(r.Context())

	resp := statusResponse{Authenticated: session.Authenticated()}
	if resp.Authenticated {
		resp.Email = session.Email
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Logout forgets the session and returns to the landing page
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFromContext(r.Context())

	if err := h.sessions.Delete(r.Context(), session.ID); err != nil {
		h.logger.Warn("Failed to delete session", "error", err)
	}
	http.SetCookie(w, h.sessionCookie("", -1))

	http.Redirect(w, r, "/", http.StatusFound)
}
