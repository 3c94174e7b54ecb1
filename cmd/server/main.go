package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gcclub/membercard/internal/bootstrap"
	"github.com/gcclub/membercard/internal/config"
	"github.com/gcclub/membercard/internal/router"
	"github.com/gcclub/membercard/internal/shared/database"
	"github.com/gcclub/membercard/internal/shared/flash"
	"github.com/gcclub/membercard/internal/shared/logger"
	"github.com/gcclub/membercard/internal/shared/storage"
	"github.com/gcclub/membercard/internal/shared/validator"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Parse command line flags
	env := parseFlags()

	// Initialize logger
	logger.Setup(env)
	slog.Info("server initializing", "env", env)

	// Run application
	if err := run(env); err != nil {
		slog.Error("server initialization failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped", "env", env)
}

// parseFlags parses command line arguments
func parseFlags() string {
	env := flag.String("env", "local", "Environment (local|dev|production)")
	flag.Parse()
	return *env
}

// run contains the main application logic
func run(env string) error {
	// Create root context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.Info("config loaded")

	// Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("database close failed", "error", err)
		}
	}()

	// Optional backing services
	infra := setupInfra(ctx, cfg)
	if infra.Redis != nil {
		defer func() {
			if err := infra.Redis.Close(); err != nil {
				slog.Error("redis close failed", "error", err)
			}
		}()
	}

	// Setup server
	srv := setupServer(cfg, db, infra)

	// Start server with graceful shutdown
	return startWithGracefulShutdown(ctx, srv, cfg.Server.GracefulTimeout)
}

// setupServer initializes and configures the HTTP server
func setupServer(cfg *config.Config, db *database.DB, infra router.Infra) *bootstrap.Server {
	// Bootstrap server with common setup
	boot := bootstrap.NewBootstrap(cfg)
	ginEngine := boot.SetupEngine()

	// Register common validators
	if err := validator.RegisterAll(); err != nil {
		slog.Error("validator registration failed", "error", err)
		panic(err)
	}

	// Setup application-specific routes
	router.Setup(ginEngine, cfg, db, infra)

	slog.Info("server configured",
		"env", cfg.App.Env,
		"redis", infra.Redis != nil,
		"photo_storage", infra.Photos != nil,
	)

	return bootstrap.New(cfg, ginEngine)
}

// setupInfra connects Redis and MinIO when configured. A failure of either
// degrades the service instead of stopping it.
func setupInfra(ctx context.Context, cfg *config.Config) router.Infra {
	infra := router.Infra{
		Flash: flash.NewMemoryStore(cfg.Membership.FlashTTL),
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unavailable, using in-memory flash store", "addr", cfg.Redis.Addr, "error", err)
			_ = client.Close()
		} else {
			slog.Info("redis connected", "addr", cfg.Redis.Addr)
			infra.Redis = client
			infra.Flash = flash.NewRedisStore(client, cfg.Membership.FlashTTL)
		}
	}

	if cfg.Storage.Endpoint != "" {
		photos, err := storage.NewMinIOStore(ctx, cfg.Storage)
		if err != nil {
			slog.Warn("photo storage unavailable, uploads disabled", "error", err)
		} else {
			infra.Photos = photos
		}
	}

	return infra
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func startWithGracefulShutdown(ctx context.Context, srv *bootstrap.Server, gracefulTimeout time.Duration) error {
	// Channel to receive server errors
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		serverErrors <- srv.Start()
	}()

	// Channel to receive OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for either server error or interrupt signal
	select {
	case err := <-serverErrors:
		// Server failed to start or stopped unexpectedly
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case sig := <-quit:
		// Received shutdown signal
		slog.Info("shutdown signal received", "signal", sig.String())

		// Create shutdown context with timeout
		shutdownCtx, cancel := context.WithTimeout(ctx, gracefulTimeout)
		defer cancel()

		// Attempt graceful shutdown
		slog.Info("shutting down server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("forced shutdown: %w", err)
		}
		return nil
	}
}
