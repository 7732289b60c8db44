package handler

import (
	"context"
	"net/http"

	"chatspace-exporter/internal/domain/entity"
	"chatspace-exporter/internal/domain/repository"
	"chatspace-exporter/internal/usecase"
	"chatspace-exporter/pkg/logger"
	"chatspace-exporter/pkg/metrics"
	"chatspace-exporter/templates"

	"golang.org/x/oauth2"
)

// OAuthClient is the part of the OAuth client the handlers use
type OAuthClient interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	FetchEmail(ctx context.Context, token *oauth2.Token) (string, error)
	TokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource
}

// Exporter runs exports and reports their history
type Exporter interface {
	Export(ctx context.Context, tokenSource oauth2.TokenSource, actor string) (*entity.ExportResult, error)
	RecentRuns(ctx context.Context, limit int) ([]*entity.ExportRun, error)
}

// SpaceFinder resolves space IDs by name
type SpaceFinder interface {
	FindSpaceID(ctx context.Context, tokenSource oauth2.TokenSource, name string) (*usecase.LookupMatch, error)
}

// RouteRegistrar registers HTTP handlers by pattern
type RouteRegistrar interface {
	Register(pattern string, handler http.Handler)
}

// Config holds the handler settings
type Config struct {
	CookieName     string
	SecureCookie   bool
	Worksheet      string
	SpreadsheetURL string
	HistoryLimit   int
	SummaryRows    int
}

// Handler serves the web routes
type Handler struct {
	oauth    OAuthClient
	exporter Exporter
	finder   SpaceFinder
	sessions repository.SessionRepository
	pages    *templates.Pages
	metrics  *metrics.Metrics
	logger   logger.Logger
	cfg      Config
}

// NewHandler creates the web handlers
func NewHandler(
	oauth OAuthClient,
	exporter Exporter,
	finder SpaceFinder,
	sessions repository.SessionRepository,
	pages *templates.Pages,
	metrics *metrics.Metrics,
	logger logger.Logger,
	cfg Config,
) *Handler {
	if cfg.SummaryRows <= 0 {
		cfg.SummaryRows = 20
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 50
	}

	return &Handler{
		oauth:    oauth,
		exporter: exporter,
		finder:   finder,
		sessions: sessions,
		pages:    pages,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
	}
}

// RegisterRoutes registers every route with session handling and panic recovery
func (h *Handler) RegisterRoutes(r RouteRegistrar) {
	routes := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{"GET /{$}", h.Home},
		{"GET /api/auth/login", h.Login},
		{"GET /api/auth/callback", h.Callback},
		{"GET /api/auth/status", h.Status},
		{"GET /api/auth/logout", h.Logout},
		{"GET /export", h.Export},
		{"GET /api/spaces/lookup", h.Lookup},
		{"GET /api/exports/history", h.History},
	}

	for _, route := range routes {
		r.Register(route.pattern, h.Recover(h.WithSession(route.handler)))
	}
}

func (h *Handler) saveSession(ctx context.Context, session *entity.Session) error {
	return h.sessions.Save(ctx, session)
}
