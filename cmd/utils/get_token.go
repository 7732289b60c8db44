package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"chatspace-exporter/internal/infrastructure/config"
	"chatspace-exporter/internal/infrastructure/oauth"
	"chatspace-exporter/pkg/logger"

	"github.com/google/uuid"
)

// get_token prints a refresh token for GOOGLE_REFRESH_TOKEN. The loopback redirect
// below must be registered on the OAuth client.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		log.Fatal("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}

	googleOAuth := oauth.NewGoogleOAuth(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		"http://localhost:8090/oauth2callback",
		logger.NewNopLogger(),
	)

	// Create a random state
	state := uuid.NewString()

	// Start an HTTP server to handle the OAuth callback
	http.HandleFunc("/oauth2callback", func(w http.ResponseWriter, r *http.Request) {
		// Check state parameter
		if r.URL.Query().Get("state") != state {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}

		// Exchange the authorization code for a token
		code := r.URL.Query().Get("code")
		token, err := googleOAuth.ExchangeCode(context.Background(), code)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to exchange code: %v", err), http.StatusInternalServerError)
			return
		}

		// Print the refresh token
		fmt.Printf("\nRefresh Token: %s\n\n", token.RefreshToken)

		// Respond to the user
		fmt.Fprintf(w, "Authentication successful! You can close this window.")
		os.Exit(0)
	})

	// Generate the authorization URL
	fmt.Printf("Open this URL in your browser:\n%s\n", googleOAuth.AuthCodeURL(state))

	log.Fatal(http.ListenAndServe(":8090", nil))
}
