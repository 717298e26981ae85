// Command server boots the prompt backend: configuration, logging, tracing,
// the SQLite store, the model client, and the Gin HTTP API, then serves until
// SIGINT/SIGTERM and shuts down gracefully.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/kila-labs/go-prompt-backend/docs" // swagger spec registration

	"github.com/kila-labs/go-prompt-backend/internal/ai"
	"github.com/kila-labs/go-prompt-backend/internal/config"
	httpapi "github.com/kila-labs/go-prompt-backend/internal/http"
	"github.com/kila-labs/go-prompt-backend/internal/observability"
	"github.com/kila-labs/go-prompt-backend/internal/repo"
	"github.com/kila-labs/go-prompt-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// @title       Prompt Backend API
// @version     1.0
// @description REST API for idempotent prompt capture with synchronous model processing.
// @BasePath    /api/v1
func main() {
	cfg := config.MustLoad()

	// Logging: pretty console in development, JSON elsewhere.
	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Info().
		Str("env", string(cfg.Env)).
		Str("version", version).
		Str("ai_provider", cfg.AI.Provider).
		Msg("starting")

	ctx := context.Background()

	// Tracing (no-op shutdown when disabled).
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	// Store.
	db, err := repo.OpenSQLite(cfg.DBPath, repo.Options{
		PoolSize: cfg.PoolSize,
		Tracing:  cfg.OTEL.Enabled,
	})
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	// Model client.
	model, err := ai.New(cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("model client setup failed")
	}

	// HTTP.
	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	httpapi.RegisterRoutes(engine, db, model, cfg, version)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("stopped")
}
