// Copyright (c) 2026 Aethercal. All rights reserved.

// Command api is the entry point for the Aethercal campaign calendar server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire domain services and the realtime hub.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aetherialcal/aethercal/internal/api"
	"github.com/aetherialcal/aethercal/internal/auth"
	"github.com/aetherialcal/aethercal/internal/calendar"
	"github.com/aetherialcal/aethercal/internal/campaign/almanac"
	"github.com/aetherialcal/aethercal/internal/campaign/category"
	"github.com/aetherialcal/aethercal/internal/campaign/completion"
	"github.com/aetherialcal/aethercal/internal/campaign/event"
	"github.com/aetherialcal/aethercal/internal/campaign/group"
	"github.com/aetherialcal/aethercal/internal/campaign/session"
	"github.com/aetherialcal/aethercal/internal/platform/config"
	"github.com/aetherialcal/aethercal/internal/platform/constants"
	"github.com/aetherialcal/aethercal/internal/platform/middleware"
	"github.com/aetherialcal/aethercal/internal/platform/migration"
	pgstore "github.com/aetherialcal/aethercal/internal/platform/postgres"
	redisstore "github.com/aetherialcal/aethercal/internal/platform/redis"
	"github.com/aetherialcal/aethercal/internal/platform/sec"
	"github.com/aetherialcal/aethercal/internal/realtime"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckBroadcast: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Realtime Hub ───────────────────────────────────────────────────
	// The hub runs for the life of the process. Its context is cancelled
	// after the HTTP server drains, which closes the Redis subscription.
	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()

	registry := realtime.NewRegistry()
	broadcaster := realtime.NewRedisBroadcaster(rdb)
	hub := realtime.NewHub(rdb, registry, broadcaster, log)
	go func() {
		if err := hub.Run(hubCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("hub_stopped", slog.Any("error", err))
		}
	}()

	// Websocket upgrades are open cross-origin in development only.
	checkOrigin := func(r *http.Request) bool {
		if cfg.IsDevelopment() {
			return true
		}
		origin := r.Header.Get(constants.HeaderOrigin)
		if origin == "" {
			return true
		}
		for _, allowed := range cfg.AllowedOrigins() {
			if origin == allowed {
				return true
			}
		}
		return false
	}

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	definition := calendar.Default()
	must(log, definition.Validate(), "validate calendar definition")

	sessionService := session.NewService(session.NewPostgresRepository(pool), definition, broadcaster, cfg.CampaignDeleteHash, log)
	eventService := event.NewService(event.NewPostgresRepository(pool), definition, broadcaster, log)
	groupService := group.NewService(group.NewPostgresRepository(pool), definition, broadcaster, log)
	categoryService := category.NewService(category.NewPostgresRepository(pool), broadcaster, log)
	completionService := completion.NewService(completion.NewPostgresRepository(pool), definition, broadcaster, log)
	almanacService := almanac.NewService(almanac.NewPostgresRepository(pool), definition, broadcaster, log)
	authService := auth.NewService(jwtSvc, cfg.MasterPasswordHash, log)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	limiterStop := make(chan struct{})
	defer close(limiterStop)
	limiter := middleware.NewRateLimiter(limiterStop)

	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService),
		Calendar:   calendar.NewHandler(definition),
		Session:    session.NewHandler(sessionService),
		Event:      event.NewHandler(eventService),
		Group:      group.NewHandler(groupService),
		Category:   category.NewHandler(categoryService),
		Completion: completion.NewHandler(completionService),
		Almanac:    almanac.NewHandler(almanacService),
		Realtime:   realtime.NewHandler(hubCtx, hub, log, checkOrigin),
	}

	server := api.NewServer(cfg, log, jwtSvc, limiter, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
