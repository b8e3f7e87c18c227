package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "withings-health-sync/docs"
	"withings-health-sync/internal/adapters/auth/jwtverifier"
	pg "withings-health-sync/internal/adapters/storage/postgres"
	"withings-health-sync/internal/adapters/withings"
	"withings-health-sync/internal/config"
	"withings-health-sync/internal/platform/logger"
	"withings-health-sync/internal/platform/metrics"
	"withings-health-sync/internal/ports/auth"
	"withings-health-sync/internal/router"
)

// @title Withings Health Sync API
// @version 1.0
// @description Sincroniza y expone medidas, dispositivos y objetivos de una cuenta Withings.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Sync() }()
	}

	metrics.Init()

	client, err := withings.NewClient(withings.Config{
		APIHost:          cfg.WithingsAPIHost,
		Timeout:          cfg.Timeout,
		RateLimit:        cfg.RateLimit,
		MaxResponseBytes: cfg.MaxResponseBytes,
		Logger:           log,
	})
	if err != nil {
		log.Error("withings client error", map[string]any{"err": err})
		os.Exit(1)
	}
	defer client.Close()
	client.Authenticate(cfg.WithingsToken)
	if !client.IsAuthenticated() {
		log.Warn("WITHINGS_TOKEN not set; upstream calls will fail", nil)
	}

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("db open error", map[string]any{"err": err})
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = pg.Migrate(ctx, db)
		cancel()
		if err != nil {
			log.Error("db migrate error", map[string]any{"err": err})
			os.Exit(1)
		}
	}

	// sin JWT_SECRET => modo dev (X-Debug-User-ID)
	var verifier auth.AuthVerifier
	if cfg.JWTSecret != "" {
		verifier = jwtverifier.New(cfg.JWTSecret)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Withings:     client,
		DB:           db,
		Types:        cfg.Types,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2 * cfg.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": cfg.Addr(), "postgres": db != nil, "dev_auth": verifier == nil})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	}
}
