package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/neonsnake/neonsnake-backend/internal/api"
	"github.com/neonsnake/neonsnake-backend/internal/factory"
	"github.com/neonsnake/neonsnake-backend/internal/services/auth"
	redisstorage "github.com/neonsnake/neonsnake-backend/internal/storage/redis"
)

// serverEnv holds raw environment configuration
type serverEnv struct {
	Host        string        `env:"NEONSNAKE_HOST"`
	Port        int           `env:"NEONSNAKE_PORT" envDefault:"8080"`
	StorageType string        `env:"NEONSNAKE_STORAGE_TYPE"`
	RedisURL    string        `env:"NEONSNAKE_REDIS_URL"`
	TokenSecret string        `env:"NEONSNAKE_TOKEN_SECRET"`
	TokenExpiry time.Duration `env:"NEONSNAKE_TOKEN_EXPIRY" envDefault:"30m"`
}

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load .env if present, then parse environment config
	_ = godotenv.Load()

	var envCfg serverEnv
	if err := env.Parse(&envCfg); err != nil {
		logger.Error("failed to parse environment", slog.String("error", err.Error()))
		os.Exit(1)
	}

	authCfg := auth.Config{
		TokenSecret: []byte(envCfg.TokenSecret),
		TokenExpiry: envCfg.TokenExpiry,
	}
	if envCfg.TokenSecret == "" {
		logger.Warn("NEONSNAKE_TOKEN_SECRET not set; using a random per-process secret")
	}

	cfg := factory.Config{
		Logger:      logger,
		StorageType: envCfg.StorageType,
		AuthConfig:  authCfg,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		if envCfg.RedisURL == "" {
			logger.Error("NEONSNAKE_REDIS_URL required when NEONSNAKE_STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = envCfg.RedisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		AuthService:        app.AuthService,
		LeaderboardService: app.LeaderboardService,
		SessionService:     app.SessionService,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = envCfg.Host
	serverConfig.Port = envCfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
