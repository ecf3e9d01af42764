package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/unogame/internal/dependencies/clock"
	"github.com/mcoot/unogame/internal/dependencies/random"
	"github.com/mcoot/unogame/internal/model"
	"github.com/mcoot/unogame/internal/services/bot"
	"github.com/mcoot/unogame/internal/services/game"
	"github.com/mcoot/unogame/internal/services/session"
	"github.com/mcoot/unogame/internal/storage"
	"github.com/mcoot/unogame/internal/storage/memory"
	redisstorage "github.com/mcoot/unogame/internal/storage/redis"
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
	Seeds random.Random

	// Services
	Strategy bot.Strategy
	Engine   *game.Engine
	Store    *session.Store
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Defaults are the settings new games start with
	// If zero value, defaults to model.DefaultSettings()
	Defaults model.Settings
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

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

	defaults := cfg.Defaults
	if defaults == (model.Settings{}) {
		defaults = model.DefaultSettings()
	}

	return newWithDependencies(store, clock.New(), random.New(), defaults, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, seeds random.Random, defaults model.Settings, logger *slog.Logger) *App {
	strategy := bot.NewGreedyStrategy()
	engine := game.NewEngine(clk, strategy, logger)
	sessions := session.NewStore(store, engine, seeds, clk, defaults, logger)

	return &App{
		Storage:  store,
		Clock:    clk,
		Seeds:    seeds,
		Strategy: strategy,
		Engine:   engine,
		Store:    sessions,
	}
}

// RedisConfig builds the redis backend settings for a URL and TTL, keeping
// the default pool sizes
func RedisConfig(url string, ttl time.Duration) *redisstorage.Config {
	cfg := redisstorage.DefaultConfig()
	if url != "" {
		cfg.URL = url
	}
	cfg.SessionTTL = ttl
	return &cfg
}

// Close releases resources held by the storage backend, if any
func (a *App) Close() error {
	if c, ok := a.Storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
