package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"

	"github.com/greentips/tips-platform/external/sportsapi"
	"github.com/greentips/tips-platform/internal/config"
	"github.com/greentips/tips-platform/internal/domain/stats"
	"github.com/greentips/tips-platform/internal/domain/tip"
	cacherepo "github.com/greentips/tips-platform/internal/infrastructure/repository/cache"
	"github.com/greentips/tips-platform/internal/infrastructure/repository/postgres"
	"github.com/greentips/tips-platform/internal/interfaces/httpapi"
	basecache "github.com/greentips/tips-platform/internal/platform/cache"
	"github.com/greentips/tips-platform/internal/platform/logging"
	"github.com/greentips/tips-platform/internal/platform/resilience"
	"github.com/greentips/tips-platform/internal/usecase"
)

// App bundles the HTTP server with the sync service so the entrypoint can
// run scheduled syncs alongside request serving.
type App struct {
	Server *http.Server
	Sync   *usecase.SyncService

	db     *sqlx.DB
	logger *slog.Logger
}

func New(cfg config.Config, logger *slog.Logger, appLogger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if appLogger == nil {
		appLogger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	var tipRepo tip.Repository = postgres.NewTipRepository(db)
	var statsRepo stats.Repository = postgres.NewStatsRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	userRepo := postgres.NewUserRepository(db)

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		tipRepo = cacherepo.NewTipRepository(tipRepo, store)
		statsRepo = cacherepo.NewStatsRepository(statsRepo, store)
	}

	provider := sportsapi.NewClient(sportsapi.ClientConfig{
		HTTPClient:        &http.Client{Timeout: cfg.SportsAPITimeout},
		FootballBaseURL:   cfg.SportsAPIFootballBaseURL,
		BasketballBaseURL: cfg.SportsAPIBasketballBaseURL,
		APIKey:            cfg.SportsAPIKey,
		Timeout:           cfg.SportsAPITimeout,
		Logger:            appLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SportsAPICircuitEnabled,
			FailureThreshold: cfg.SportsAPICircuitFailureCount,
			OpenTimeout:      cfg.SportsAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SportsAPICircuitHalfOpenReqs,
		},
	})

	syncService := usecase.NewSyncService(usecase.SyncServiceConfig{
		Provider:      provider,
		Matches:       matchRepo,
		Tips:          tipRepo,
		MinConfidence: cfg.TipsMinConfidence,
		Logger:        appLogger,
	})
	tipService := usecase.NewTipService(usecase.TipServiceConfig{
		Tips:   tipRepo,
		Stats:  statsRepo,
		Logger: appLogger,
	})
	billingService := usecase.NewBillingService(usecase.BillingServiceConfig{
		Users:  userRepo,
		Logger: appLogger,
	})

	handler := httpapi.NewHandler(tipService, syncService, billingService, logger)
	var routerOpts []httpapi.RouterOption
	if cfg.UptraceEnabled && cfg.UptraceCaptureRequestBody {
		routerOpts = append(routerOpts, httpapi.WithRequestBodyCapture(cfg.UptraceRequestBodyMaxBytes))
	}
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.SyncJobToken, routerOpts...)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		_ = db.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server: server,
		Sync:   syncService,
		db:     db,
		logger: logger,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
