// internal/infrastructure/config/config.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Export history stores
const (
	HistoryStoreMemory   = "memory"
	HistoryStoreMongo    = "mongo"
	HistoryStorePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion       string
	LogLevel         string
	MetricsNamespace string

	// Server
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	SessionCookieName string

	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	GoogleRefreshToken string

	// Export target
	SpreadsheetID string
	WorksheetName string
	ChatPageSize  int

	// Export history
	HistoryStore string
	HistoryLimit int

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL
	PostgresURI string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:       getEnv("APP_VERSION", "1.0.0"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "chatspace_exporter"),

		Port:              getEnv("PORT", "5000"),
		ReadTimeout:       time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout:      time.Duration(getEnvAsInt("WRITE_TIMEOUT", 0)) * time.Second,
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "chatspace_session"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:5000/api/auth/callback"),
		GoogleRefreshToken: getEnv("GOOGLE_REFRESH_TOKEN", ""),

		SpreadsheetID: getEnv("SPREADSHEET_ID", ""),
		WorksheetName: getEnv("WORKSHEET_NAME", "ChatWebhooks"),
		ChatPageSize:  getEnvAsInt("CHAT_PAGE_SIZE", 100),

		HistoryStore: strings.ToLower(getEnv("HISTORY_STORE", HistoryStoreMemory)),
		HistoryLimit: getEnvAsInt("HISTORY_LIMIT", 50),

		MongoURI:      getEnv("MONGODB_DSN", ""),
		MongoDB:       getEnv("MONGO_DB", "chatspaces"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", ""),
	}

	return config, nil
}

// Validate checks the settings every entrypoint needs and reports all problems at once
func (c *Config) Validate() error {
	var errs []error

	required := []struct {
		key   string
		value string
	}{
		{"GOOGLE_CLIENT_ID", c.GoogleClientID},
		{"GOOGLE_CLIENT_SECRET", c.GoogleClientSecret},
		{"GOOGLE_REDIRECT_URL", c.GoogleRedirectURL},
		{"SPREADSHEET_ID", c.SpreadsheetID},
		{"WORKSHEET_NAME", c.WorksheetName},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.key))
		}
	}

	if c.GoogleRedirectURL != "" {
		u, err := url.Parse(c.GoogleRedirectURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("GOOGLE_REDIRECT_URL must be an absolute http(s) URL, got %q", c.GoogleRedirectURL))
		}
	}

	if c.ChatPageSize < 1 || c.ChatPageSize > 1000 {
		errs = append(errs, fmt.Errorf("CHAT_PAGE_SIZE must be between 1 and 1000, got %d", c.ChatPageSize))
	}

	switch c.HistoryStore {
	case HistoryStoreMemory:
	case HistoryStoreMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGODB_DSN is required when HISTORY_STORE=mongo"))
		}
	case HistoryStorePostgres:
		if c.PostgresURI == "" {
			errs = append(errs, errors.New("POSTGRES_DSN is required when HISTORY_STORE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("HISTORY_STORE must be one of memory, mongo, postgres, got %q", c.HistoryStore))
	}

	return errors.Join(errs...)
}

// SpreadsheetURL returns the browser link to the target spreadsheet
func (c *Config) SpreadsheetURL() string {
	return "https://docs.google.com/spreadsheets/d/" + url.PathEscape(c.SpreadsheetID)
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
