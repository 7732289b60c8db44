package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"chatspace-exporter/internal/domain/repository"
	"chatspace-exporter/internal/infrastructure/config"
	"chatspace-exporter/internal/infrastructure/oauth"
	"chatspace-exporter/internal/infrastructure/persistence"
	"chatspace-exporter/internal/infrastructure/router"
	"chatspace-exporter/internal/interface/googleclient"
	"chatspace-exporter/internal/interface/handler"
	repo "chatspace-exporter/internal/interface/repository"
	"chatspace-exporter/internal/usecase"
	"chatspace-exporter/pkg/logger"
	"chatspace-exporter/pkg/metrics"
	"chatspace-exporter/templates"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger().Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Chat Space Exporter", "version", cfg.AppVersion)

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics(cfg.MetricsNamespace)

	// Set up export history
	runRepo, closeHistory, err := newHistoryStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to set up export history", "store", cfg.HistoryStore, "error", err)
	}
	defer closeHistory()

	// Set up Google OAuth and per-session API clients
	googleOAuth := oauth.NewGoogleOAuth(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		log,
	)
	factory := googleclient.NewFactory(cfg.ChatPageSize, log)

	exporter := usecase.NewSpaceExporter(factory, runRepo, m, log, cfg.SpreadsheetID, cfg.WorksheetName)
	lookup := usecase.NewSpaceLookup(factory, log, cfg.SpreadsheetID, cfg.WorksheetName)

	pages, err := templates.NewPages()
	if err != nil {
		log.Fatal("Failed to parse pages", "error", err)
	}

	h := handler.NewHandler(
		googleOAuth,
		exporter,
		lookup,
		repo.NewMemorySessionRepository(),
		pages,
		m,
		log,
		handler.Config{
			CookieName:     cfg.SessionCookieName,
			SecureCookie:   strings.HasPrefix(cfg.GoogleRedirectURL, "https://"),
			Worksheet:      cfg.WorksheetName,
			SpreadsheetURL: cfg.SpreadsheetURL(),
			HistoryLimit:   cfg.HistoryLimit,
		},
	)

	// Set up routes
	r := router.NewRouter(log)
	h.RegisterRoutes(r)
	r.Register("GET /metrics", promhttp.Handler())
	r.RegisterFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port, "redirectURL", cfg.GoogleRedirectURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	log.Info("Chat Space Exporter stopped")
}

// newHistoryStore opens the configured export history backend and returns a function releasing it
func newHistoryStore(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.ExportRunRepository, func(), error) {
	switch cfg.HistoryStore {
	case config.HistoryStoreMongo:
		log.Info("Connecting to MongoDB")
		client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error("MongoDB disconnect error", "error", err)
			}
		}
		runRepo, err := repo.NewMongoExportRunRepository(ctx, db)
		if err != nil {
			closer()
			return nil, nil, err
		}
		return runRepo, closer, nil

	case config.HistoryStorePostgres:
		log.Info("Connecting to PostgreSQL")
		db, err := persistence.NewPostgresDB(cfg.PostgresURI)
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			if err := persistence.ClosePostgresDB(db); err != nil {
				log.Error("PostgreSQL close error", "error", err)
			}
		}
		runRepo, err := repo.NewGormExportRunRepository(db)
		if err != nil {
			closer()
			return nil, nil, err
		}
		return runRepo, closer, nil

	default:
		return repo.NewMemoryExportRunRepository(cfg.HistoryLimit), func() {}, nil
	}
}
