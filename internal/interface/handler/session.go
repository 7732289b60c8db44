package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"chatspace-exporter/internal/domain/entity"

	"github.com/google/uuid"
)

type sessionKey struct{}

// ContextWithSession returns a copy of ctx carrying session
func ContextWithSession(ctx context.Context, session *entity.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session injected by WithSession
func SessionFromContext(ctx context.Context) (*entity.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*entity.Session)
	return session, ok && session != nil
}

// WithSession resolves the browser's session from its cookie, creating one when
// needed, and injects it into the request context
func (h *Handler) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var session *entity.Session
		if cookie, err := r.Cookie(h.cfg.CookieName); err == nil && cookie.Value != "" {
			found, err := h.sessions.FindByID(ctx, cookie.Value)
			switch {
			case err == nil:
				session = found
			case !errors.Is(err, entity.ErrSessionNotFound):
				h.logger.Error("Failed to load session", "error", err)
			}
		}

		if session == nil {
			session = &entity.Session{
				ID:        uuid.NewString(),
				CreatedAt: time.Now(),
			}
			if err := h.sessions.Save(ctx, session); err != nil {
				h.renderError(w, r, http.StatusInternalServerError, "Session error", err, false)
				return
			}
			http.SetCookie(w, h.sessionCookie(session.ID, 0))
		}

		next.ServeHTTP(w, r.WithContext(ContextWithSession(ctx, session)))
	})
}

func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
