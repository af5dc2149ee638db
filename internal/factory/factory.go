package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Biskuitttt/Suratt/internal/blobstore"
	"github.com/Biskuitttt/Suratt/internal/config"
	"github.com/Biskuitttt/Suratt/internal/dependencies/clock"
	"github.com/Biskuitttt/Suratt/internal/metrics"
	"github.com/Biskuitttt/Suratt/internal/records"
	"github.com/Biskuitttt/Suratt/internal/services/access"
	"github.com/Biskuitttt/Suratt/internal/services/auth"
	"github.com/Biskuitttt/Suratt/internal/services/naming"
	"github.com/Biskuitttt/Suratt/internal/storage"
	"github.com/Biskuitttt/Suratt/internal/storage/memory"
	redisstorage "github.com/Biskuitttt/Suratt/internal/storage/redis"
	"github.com/Biskuitttt/Suratt/internal/storage/sqlstore"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypeSQLite   = "sqlite"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Store   storage.DocumentStore
	Records *records.Repository
	Blobs   blobstore.Resolver

	// External dependencies
	Clock clock.Clock

	// Content
	Site    config.Site
	Aliases *naming.AliasTable
	Metrics *metrics.Metrics

	// Services
	AccessService *access.Service
	AuthService   *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the document store ("memory", "redis", "sqlite" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// DatabaseURL is the DSN for the sqlite and postgres store types
	DatabaseURL string
	// Blob selects the blob store URL resolver
	// If Backend and Bucket are both empty, a CDN resolver rooted at "/" is used
	Blob blobstore.Config
	// Site holds page content and alias data
	// If nil, defaults to config.DefaultSite()
	Site *config.Site
	// AuthConfig holds configuration for the auth service (optional)
	// If SessionDuration is zero, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// AllowGuessedNames lets alias-table names through the gate
	AllowGuessedNames bool
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	blobCfg := cfg.Blob
	if blobCfg.Backend == "" && blobCfg.Bucket == "" {
		blobCfg = blobstore.Config{Backend: blobstore.BackendCDN, BaseURL: "/"}
	}
	blobs, err := blobstore.New(blobCfg)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("blob store: %w", err)
	}

	site := config.DefaultSite()
	if cfg.Site != nil {
		site = *cfg.Site
	}

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg.SessionDuration = auth.DefaultConfig().SessionDuration
	}

	return newWithDependencies(store, blobs, clock.New(), site, authCfg, cfg.AllowGuessedNames, logger), nil
}

func openStore(cfg Config) (storage.DocumentStore, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeSQLite, StorageTypePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DatabaseURL required when StorageType is %s", storageType)
		}
		dialect, err := sqlstore.DialectByName(storageType)
		if err != nil {
			return nil, err
		}
		return sqlstore.Open(context.Background(), dialect, cfg.DatabaseURL)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis', 'sqlite' or 'postgres'")
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.DocumentStore,
	blobs blobstore.Resolver,
	clk clock.Clock,
	site config.Site,
	authCfg auth.Config,
	allowGuessed bool,
	logger *slog.Logger,
) *App {
	repo := records.New(store)
	aliases := naming.NewAliasTable(site.Aliases)
	m := metrics.New()

	accessService := access.New(repo, blobs, aliases, m, logger, access.Config{
		ParticipantsDir:   site.ParticipantsDir,
		PhotoFilename:     site.PhotoFilename,
		ImageExtensions:   site.ImageExtensions,
		AllowGuessedNames: allowGuessed,
		Redirects:         site.Redirects,
	})
	authService := auth.New(clk, authCfg, logger)

	return &App{
		Store:         store,
		Records:       repo,
		Blobs:         blobs,
		Clock:         clk,
		Site:          site,
		Aliases:       aliases,
		Metrics:       m,
		AccessService: accessService,
		AuthService:   authService,
	}
}

// Close releases the document store
func (a *App) Close() error {
	return a.Store.Close()
}
