package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/neonsnake/neonsnake-backend/internal/dependencies/clock"
	"github.com/neonsnake/neonsnake-backend/internal/services/auth"
	"github.com/neonsnake/neonsnake-backend/internal/services/leaderboard"
	"github.com/neonsnake/neonsnake-backend/internal/services/session"
	"github.com/neonsnake/neonsnake-backend/internal/storage"
	"github.com/neonsnake/neonsnake-backend/internal/storage/memory"
	redisstorage "github.com/neonsnake/neonsnake-backend/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService        *auth.Service
	LeaderboardService *leaderboard.Service
	SessionService     *session.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()

	authCfg := cfg.AuthConfig
	if authCfg.TokenExpiry == 0 {
		authCfg.TokenExpiry = auth.DefaultConfig().TokenExpiry
	}

	return newWithDependencies(store, clk, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authCfg auth.Config, logger *slog.Logger) *App {
	return &App{
		Storage:            store,
		Clock:              clk,
		AuthService:        auth.New(store, clk, authCfg),
		LeaderboardService: leaderboard.New(store, clk, logger),
		SessionService:     session.New(store, clk, logger),
	}
}
