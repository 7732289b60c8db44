package oauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chatspace-exporter/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/chat/v1"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scopes requested on the consent screen
var Scopes = []string{
	chat.ChatMessagesScope,
	chat.ChatSpacesScope,
	chat.ChatMembershipsScope,
	sheets.SpreadsheetsScope,
	oauth2api.OpenIDScope,
	oauth2api.UserinfoEmailScope,
	oauth2api.UserinfoProfileScope,
}

// GoogleOAuth handles the authorization-code flow against Google
type GoogleOAuth struct {
	config *oauth2.Config
	logger logger.Logger

	// extra options for the userinfo client, used to point it elsewhere
	userinfoOpts []option.ClientOption
}

// NewGoogleOAuth creates a new Google OAuth handler
func NewGoogleOAuth(clientID, clientSecret, redirectURL string, logger logger.Logger) *GoogleOAuth {
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       Scopes,
	}

	return &GoogleOAuth{
		config: config,
		logger: logger,
	}
}

// AuthCodeURL returns the consent screen URL carrying state
func (o *GoogleOAuth) AuthCodeURL(state string) string {
	return o.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ExchangeCode exchanges an authorization code for a token
func (o *GoogleOAuth) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, errors.New("authorization code is empty")
	}

	token, err := o.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	o.logger.Info("Authorization code exchanged",
		"hasRefreshToken", token.RefreshToken != "",
		"expiry", token.Expiry.Format(time.RFC3339))

	return token, nil
}

// FetchEmail returns the email address of the identity behind token
func (o *GoogleOAuth) FetchEmail(ctx context.Context, token *oauth2.Token) (string, error) {
	opts := append([]option.ClientOption{option.WithTokenSource(o.TokenSource(ctx, token))}, o.userinfoOpts...)

	service, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create userinfo service: %w", err)
	}

	info, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to fetch user profile: %w", err)
	}
	if info.Email == "" {
		return "", errors.New("user profile has no email")
	}

	return info.Email, nil
}

// TokenSource returns a refreshing token source for a session token
func (o *GoogleOAuth) TokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource {
	return o.config.TokenSource(ctx, token)
}

// RefreshTokenSource returns a token source built from a stored refresh token
func (o *GoogleOAuth) RefreshTokenSource(ctx context.Context, refreshToken string) oauth2.TokenSource {
	token := &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now(), // Force refresh
	}

	return o.config.TokenSource(ctx, token)
}
