// Package main is the entry point for the lumbertrace API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lumbertrace/internal/app"
	"lumbertrace/internal/config"
	v1 "lumbertrace/internal/infrastructure/http/v1"
	"lumbertrace/internal/infrastructure/observability"
	"lumbertrace/pkg/logger"
)

var version = "dev"

func main() {
	configPath := flag.String("config", os.Getenv("LUMBERTRACE_CONFIG"), "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.App.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	log.Infow("starting lumbertrace server", "version", version, "env", cfg.App.Env)

	shutdownTracing, err := observability.InitTracing(ctx, log, observability.TracingConfig{
		Environment: cfg.App.Env,
		Version:     version,
		Stdout:      cfg.Tracing.Stdout,
	})
	if err != nil {
		log.Fatalw("failed to initialize tracing", "error", err)
	}

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatalw("failed to initialize application", "error", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Warnw("failed to close storage", "error", err)
		}
	}()

	if cfg.Storage.SeedOnEmpty {
		seeded, err := application.SeedDemo(ctx)
		if err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
		if seeded {
			log.Info("empty store seeded with demo data")
		}
	}

	authService := application.Auth()
	if authService == nil {
		log.Warn("operator auth disabled, write endpoints are open")
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:         log,
		Development:    cfg.App.IsDevelopment(),
		Materials:      application.Materials,
		Suppliers:      application.Suppliers,
		Traceability:   application.Traceability,
		Snapshots:      application.Snapshots,
		Store:          application.Backend,
		StoreDriver:    application.Backend.Driver,
		Auth:           authService,
		Metrics:        application.Metrics,
		RateLimitRPS:   cfg.HTTP.RateLimit.RPS,
		RateLimitBurst: cfg.HTTP.RateLimit.Burst,
		AllowedOrigins: cfg.HTTP.CORS.AllowedOrigins,
		Location:       time.Local,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "addr", server.Addr, "storage", application.Backend.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warnw("failed to flush traces", "error", err)
	}

	log.Info("server stopped")
}
