// Command api is the Hoopsight player statistics API server.
//
// Usage:
//
//	hoopsight-api
//	API_PORT=8080 hoopsight-api

// @title Hoopsight API
// @version 1.0.0
// @description Basketball player statistics API: per-season and career stats (basic and advanced), head-to-head comparison, lineup aggregation, and category-based recommendations.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/hoopsight/hoopsight/internal/api"
	"github.com/hoopsight/hoopsight/internal/api/handler"
	"github.com/hoopsight/hoopsight/internal/cache"
	"github.com/hoopsight/hoopsight/internal/config"
	"github.com/hoopsight/hoopsight/internal/db"
	"github.com/hoopsight/hoopsight/internal/directory"
	"github.com/hoopsight/hoopsight/internal/nba"
	"github.com/hoopsight/hoopsight/internal/stats"
	"github.com/hoopsight/hoopsight/internal/usagelog"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Usage-tracking database is optional; the side channel is disabled
	// when no DATABASE_URL is configured.
	var pool *db.Pool
	if cfg.UsageLogEnabled() {
		logger.Info("Connecting to usage-tracking database...")
		pool, err = db.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
	} else {
		logger.Info("Usage logging disabled (no DATABASE_URL)")
	}

	// Memo store shared by the directory adapter and the reconciliation
	// engine.
	store := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Upstream client and services
	client := nba.NewClient(cfg.StatsBaseURL, cfg.StatsRequestsPerMinute, cfg.StatsTimeout, logger)
	dir := directory.New(client, store, logger)
	profiles := stats.NewService(client, store, logger)

	var usage *usagelog.Store
	if pool != nil {
		usage = usagelog.New(pool.Pool, logger)
	} else {
		usage = usagelog.New(nil, logger)
	}

	// Create router
	h := handler.New(cfg, profiles, dir, usage, store, pool, logger)
	router := api.NewRouter(h, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Hoopsight API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
