package entity

import (
	"time"

	"golang.org/x/oauth2"
)

// Session is the per-browser state of the OAuth flow
type Session struct {
	ID         string
	OAuthState string
	Token      *oauth2.Token
	Email      string
	CreatedAt  time.Time
}

// Authenticated reports whether the OAuth flow completed for this session
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != nil && s.Email != ""
}
