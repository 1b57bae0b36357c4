package factory

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/pairings-web/internal/dependencies/clock"
	"github.com/mcoot/pairings-web/internal/dependencies/random"
	"github.com/mcoot/pairings-web/internal/services/signing"
	"github.com/mcoot/pairings-web/internal/services/tournament"
	"github.com/mcoot/pairings-web/internal/storage"
	"github.com/mcoot/pairings-web/internal/storage/memory"
	redisstorage "github.com/mcoot/pairings-web/internal/storage/redis"
	"github.com/mcoot/pairings-web/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// generatedSecretLength is the size of the secret made up when none is configured
const generatedSecretLength = 32

// App contains all wired backend components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Signer     *signing.Service
	Controller *tournament.Controller

	Logger *slog.Logger
}

// Config holds configuration for the backend factory
type Config struct {
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`

	// Signing holds the proof secret. If empty a random one is generated,
	// so proofs do not survive a restart.
	Signing signing.Config

	// Redis holds Redis connection settings (used if StorageType is "redis")
	Redis redisstorage.Config

	// SQLite holds the database path (used if StorageType is "sqlite")
	SQLite sqlite.Config
}

// New creates a new backend with all dependencies wired. A nil logger
// discards output.
func New(cfg Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	secret := []byte(cfg.Signing.Secret)
	if len(secret) == 0 {
		logger.Warn("PAIRING_SECRET is not set; generated a secret, proofs will not survive a restart")
		secret = rnd.Bytes(generatedSecretLength)
	}
	signer, err := signing.New(secret)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return newWithDependencies(store, clk, rnd, signer, logger), nil
}

func openStorage(cfg Config) (storage.Storage, error) {
	switch cfg.StorageType {
	case "", StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		return redisstorage.New(cfg.Redis)
	case StorageTypeSQLite:
		return sqlite.Open(cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'sqlite'", cfg.StorageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, signer *signing.Service, logger *slog.Logger) *App {
	return &App{
		Storage:    store,
		Clock:      clk,
		Random:     rnd,
		Signer:     signer,
		Controller: tournament.NewController(store, signer, clk, rnd, logger),
		Logger:     logger,
	}
}

// Close releases the storage.
func (a *App) Close() error {
	return a.Storage.Close()
}
