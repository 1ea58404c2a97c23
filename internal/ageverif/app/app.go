package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpapi "github.com/aussiebroadwan/ageverif/internal/ageverif/http"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/metrics"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/service"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/store"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/store/drivers/memory"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/store/drivers/redis"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/store/drivers/sqlite"
	"github.com/aussiebroadwan/ageverif/pkg/cryptox"
	"github.com/aussiebroadwan/ageverif/pkg/httpx"
	"github.com/aussiebroadwan/ageverif/pkg/shopify"
	"github.com/aussiebroadwan/ageverif/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application wires the age verification service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	commerce service.Commerce

	// Services
	sessionService      *service.SessionService
	tokenService        *service.TokenService
	orderService        *service.OrderService
	evidenceService     *service.EvidenceService
	webhookService      *service.WebhookService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "ageverif",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	app.logger.Info("configuration resolved",
		"provided", cfg.Sources.Provided,
		"platform_global", cfg.Sources.PlatformGlobal,
		"build_time_env", cfg.Sources.BuildTimeEnv,
		"process_env", cfg.Sources.ProcessEnv,
		"production", cfg.Production(),
	)

	app.initMetrics()

	if err := app.initStore(context.Background()); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("age verification service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down age verification service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("age verification service stopped")
	return nil
}

func (app *Application) initMetrics() {
	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.New(app.registry)
}

// initStore opens the ledger store and attaches the configured session backend.
func (app *Application) initStore(ctx context.Context) error {
	var base store.Store
	if app.cfg.DatabaseFile != "" {
		dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		db, err := sqlite.NewStore(dsn, app.cfg.SessionCapacity)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := db.ApplyMigrations(); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to apply database migrations: %w", err)
		}
		app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
		base = db
	} else {
		app.logger.Info("no database file configured, attempts ledger kept in memory")
		base = memory.NewStore(app.cfg.SessionCapacity)
	}

	switch app.cfg.SessionStore {
	case SessionStoreMemory:
		if app.cfg.DatabaseFile != "" {
			base = store.WithSessions(base, store.SessionsOf(memory.NewStore(app.cfg.SessionCapacity)))
		}
	case SessionStoreSQLite:
		if app.cfg.DatabaseFile == "" {
			_ = base.Close()
			return errors.New("SESSION_STORE=sqlite requires DATABASE_FILE")
		}
	case SessionStoreRedis:
		sessions, err := redis.New(ctx, redis.Config{
			URL:       app.cfg.RedisURL,
			Namespace: app.cfg.RedisNamespace,
		})
		if err != nil {
			_ = base.Close()
			return fmt.Errorf("failed to connect session store: %w", err)
		}
		base = store.WithSessions(base, sessions)
	default:
		_ = base.Close()
		return fmt.Errorf("unknown SESSION_STORE %q", app.cfg.SessionStore)
	}

	app.logger.Info("session store ready", "driver", app.cfg.SessionStore, "ttl", app.cfg.SessionTTL)
	app.db = base
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() error {
	verifier, err := InitVerifier(app.cfg, app.logger)
	if err != nil {
		return err
	}

	sealer, err := InitLedgerSealer(app.cfg, app.logger)
	if err != nil {
		return err
	}

	client := shopify.NewClient(app.cfg.StoreDomain, app.cfg.AdminAPIToken, app.cfg.AdminAPIVersion)
	if !client.Configured() {
		app.logger.Warn("shopify admin api not configured, evidence persistence and order lookups disabled")
	}
	app.commerce = service.InstrumentCommerce(client, app.metrics)

	app.sessionService = &service.SessionService{
		Store:   app.db,
		IDs:     cryptox.NewSessionIDGenerator(app.cfg.AllowInsecureRNG, app.logger),
		TTL:     app.cfg.SessionTTL,
		Metrics: app.metrics,
	}
	app.tokenService = &service.TokenService{
		Verifier:   verifier,
		Production: app.cfg.Production(),
		Metrics:    app.metrics,
	}
	app.orderService = &service.OrderService{
		Commerce: app.commerce,
		Metrics:  app.metrics,
	}
	app.evidenceService = &service.EvidenceService{
		Commerce:        app.commerce,
		Orders:          app.orderService,
		Sessions:        app.sessionService,
		Store:           app.db,
		Sealer:          sealer,
		Metrics:         app.metrics,
		Namespace:       app.cfg.MetafieldNamespace,
		Key:             app.cfg.MetafieldKey,
		VerifiedTag:     app.cfg.VerifiedTag,
		CreateCustomers: app.cfg.CreateCustomers,
	}

	var secret []byte
	if app.cfg.WebhookSecret != "" {
		secret = []byte(app.cfg.WebhookSecret)
	} else if app.cfg.Production() {
		app.logger.Error("no webhook secret configured, all webhooks will be rejected")
	} else {
		app.logger.Warn("no webhook secret configured, unsigned webhooks accepted")
	}
	app.webhookService = &service.WebhookService{
		Secret:     secret,
		Production: app.cfg.Production(),
		Store:      app.db,
		Metrics:    app.metrics,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.metrics,
		app.cfg.HousekeepingInterval,
	)

	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.cfg.AdminToken,
		app.db,
		app.registry,
		app.logger,
	)

	router.SessionService = app.sessionService
	router.TokenService = app.tokenService
	router.OrderService = app.orderService
	router.EvidenceService = app.evidenceService
	router.WebhookService = app.webhookService
	if app.cfg.RateLimits != (httpx.RateLimits{}) {
		router.Limits = app.cfg.RateLimits
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
