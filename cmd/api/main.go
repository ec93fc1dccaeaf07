// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the business portal HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool) and Redis.
//  4. Optionally run database migrations.
//  5. Select the token verifier. Startup fails when none is available.
//  6. Build the access pipeline and every domain module.
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

	"github.com/taibuivan/bizportal/internal/access/authn"
	"github.com/taibuivan/bizportal/internal/access/guard"
	"github.com/taibuivan/bizportal/internal/access/identity"
	"github.com/taibuivan/bizportal/internal/access/permission"
	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/activity"
	"github.com/taibuivan/bizportal/internal/api"
	"github.com/taibuivan/bizportal/internal/audit"
	"github.com/taibuivan/bizportal/internal/domains/archive"
	"github.com/taibuivan/bizportal/internal/domains/assignments"
	"github.com/taibuivan/bizportal/internal/domains/catalog"
	"github.com/taibuivan/bizportal/internal/domains/dashboard"
	"github.com/taibuivan/bizportal/internal/domains/deliveries"
	"github.com/taibuivan/bizportal/internal/domains/directory"
	"github.com/taibuivan/bizportal/internal/domains/inventory"
	"github.com/taibuivan/bizportal/internal/domains/orders"
	"github.com/taibuivan/bizportal/internal/domains/profile"
	"github.com/taibuivan/bizportal/internal/domains/reports"
	"github.com/taibuivan/bizportal/internal/domains/services"
	"github.com/taibuivan/bizportal/internal/domains/support"
	"github.com/taibuivan/bizportal/internal/platform/config"
	"github.com/taibuivan/bizportal/internal/platform/constants"
	"github.com/taibuivan/bizportal/internal/platform/migration"
	pgstore "github.com/taibuivan/bizportal/internal/platform/postgres"
	redisstore "github.com/taibuivan/bizportal/internal/platform/redis"
	"github.com/taibuivan/bizportal/internal/platform/sec"
	"github.com/taibuivan/bizportal/internal/portal"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

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

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL and Redis ───────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.Options{
		MaxConns: cfg.DatabaseMaxConns,
		MinConns: cfg.DatabaseMinConns,
	}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	if cfg.MigrateOnStart {
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")
	}

	// ── 5. Token verification ─────────────────────────────────────────────
	verifier, err := sec.NewVerifier(sec.VerifierConfig{
		Secret:         cfg.JWTSecret,
		ExternalSecret: cfg.ExternalSecret,
		DevDecodeOnly:  cfg.DevDecodeOnly,
		Production:     cfg.IsProduction(),
		Issuer:         cfg.Issuer,
	})
	must(log, err, "select token verifier")

	// ── 6. Access pipeline and domains ────────────────────────────────────
	registry, err := roles.Default()
	must(log, err, "load role registry")

	trail := audit.NewTrail(audit.NewPostgresRecorder(pool), cfg.AuditWriteTimeout)
	feed := activity.NewFeed(rdb, cfg.ActivityFeedSize)

	permissions := permission.NewPostgresStore(pool)
	gate := authn.NewGate(
		verifier,
		identity.NewLoader(identity.NewPostgresStore(pool)),
		permission.NewCalculator(permissions),
		trail,
		cfg.SessionCookie,
	)

	accounts := directory.NewPostgresStore(pool)
	composer, err := portal.NewComposer(registry, guard.New(trail),
		dashboard.NewModule(dashboard.NewService(dashboard.NewPostgresStore(pool), feed)),
		catalog.NewModule(catalog.NewService(catalog.NewPostgresStore(pool), feed)),
		orders.NewModule(orders.NewService(orders.NewPostgresStore(pool), feed)),
		services.NewModule(services.NewService(services.NewPostgresStore(pool), feed)),
		inventory.NewModule(inventory.NewService(inventory.NewPostgresStore(pool), feed)),
		deliveries.NewModule(deliveries.NewService(deliveries.NewPostgresStore(pool), feed)),
		reports.NewModule(reports.NewService(reports.NewPostgresStore(pool), feed)),
		support.NewModule(support.NewService(support.NewPostgresStore(pool), feed)),
		directory.NewModule(directory.NewService(accounts, permissions, feed)),
		profile.NewModule(profile.NewService(profile.NewPostgresStore(pool), feed)),
		archive.NewModule(archive.NewService(accounts, feed)),
		assignments.NewModule(assignments.NewService(assignments.NewPostgresStore(pool), feed)),
	)
	must(log, err, "compose portal routes")

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	router := api.NewRouter(serverCtx, api.Dependencies{
		Config:         cfg,
		Logger:         log,
		Gate:           gate,
		Composer:       composer,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Health: api.HealthDependencies{
			Database: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
			Cache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		},
	})
	server := api.NewServer(cfg.ServerPort, router, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
	}

	// Audit writes are detached from requests; flush them before the pool closes.
	trail.Wait()
	log.Info("server_stopped")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// It is limited to startup wiring.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
