// Package main is the entry point for the flyer entry server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"capflyer/internal/catalog"
	"capflyer/internal/config"
	"capflyer/internal/draft"
	"capflyer/internal/handlers"
	"capflyer/internal/hierarchy"
	"capflyer/internal/router"
	"capflyer/internal/storage"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load a local .env when present; environment variables win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env file", "error", err)
	}

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Load the category hierarchy template (embedded default, or a file
	// override for deployments with their own tree).
	hier, err := hierarchy.Load(cfg.HierarchyPath)
	if err != nil {
		slog.Error("failed to load hierarchy", "error", err)
		os.Exit(1)
	}
	slog.Info("hierarchy loaded", "categories", len(hier))

	// Connect to S3-compatible object storage (optional in development —
	// catalog endpoints respond 503 without it).
	var coord *catalog.Coordinator
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err := storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if storageClient != nil {
			coord = catalog.New(storageClient)
			slog.Info("s3 storage connected",
				"endpoint", cfg.S3Endpoint,
				"bucket", cfg.S3Bucket,
			)
		}
	} else {
		slog.Warn("s3 storage not configured — catalog persistence disabled")
	}

	// Connect to Valkey for draft sessions (optional — draft endpoints
	// respond 503 without it).
	var drafts *draft.Store
	valkeyClient, err := draft.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable — draft sessions disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		// In non-development environments, mark draft cookies as Secure.
		drafts = draft.NewStore(valkeyClient, !cfg.IsDev())
	}

	// Create the handler group and wire up the router.
	api := handlers.NewAPI(hier, coord, drafts)
	r := router.New(api)

	// Create the HTTP server with sensible timeouts. WriteTimeout covers a
	// full download-merge-upload cycle against slow object storage.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
