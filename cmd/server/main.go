package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/Biskuitttt/Suratt/internal/api"
	"github.com/Biskuitttt/Suratt/internal/blobstore"
	"github.com/Biskuitttt/Suratt/internal/config"
	"github.com/Biskuitttt/Suratt/internal/factory"
	"github.com/Biskuitttt/Suratt/internal/services/auth"
	redisstorage "github.com/Biskuitttt/Suratt/internal/storage/redis"
	"github.com/Biskuitttt/Suratt/internal/web"
)

const sessionSweepInterval = 10 * time.Minute

func main() {
	os.Exit(run())
}

// run returns the process exit code once deferred cleanup has happened
func run() int {
	// Bootstrap logger until the configured level is known
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	serverCfg, err := config.LoadServer()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		return 1
	}

	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: serverCfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	site, err := config.LoadSite(serverCfg.SiteFile)
	if err != nil {
		logger.Error("failed to load site file", slog.String("error", err.Error()))
		return 1
	}

	// Build factory config from environment
	authCfg := auth.DefaultConfig()
	authCfg.DebugTokenHash = serverCfg.DebugTokenHash

	cfg := factory.Config{
		Logger:      logger,
		StorageType: strings.ToLower(serverCfg.Storage),
		DatabaseURL: serverCfg.DatabaseURL,
		Blob: blobstore.Config{
			Backend:   serverCfg.BlobBackend,
			Bucket:    serverCfg.BlobBucket,
			BaseURL:   serverCfg.BlobBaseURL,
			CloudName: serverCfg.CloudinaryCloud,
			Transform: serverCfg.BlobTransform,
		},
		Site:              &site,
		AuthConfig:        authCfg,
		AllowGuessedNames: serverCfg.AllowGuessedNames,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = serverCfg.RedisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close store", slog.String("error", err.Error()))
		}
	}()

	if serverCfg.DebugTokenHash == "" {
		logger.Info("debug endpoint disabled, SURAT_DEBUG_TOKEN_HASH not set")
	}

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AccessService:  app.AccessService,
		AuthService:    app.AuthService,
		MetricsHandler: app.Metrics.Handler(),
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:        logger,
		AccessService: app.AccessService,
		AuthService:   app.AuthService,
		Site:          app.Site,
		SecureCookies: serverCfg.SecureCookies,
		StaticDir:     findStaticDir(),
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = serverCfg.HTTPPort
	server := api.NewServer(mux, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, app.AuthService, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return 1
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return 1
		}
	}

	logger.Info("server stopped")
	return 0
}

// sweepSessions drops expired sessions until ctx is done
func sweepSessions(ctx context.Context, authService *auth.Service, logger *slog.Logger) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := authService.CleanExpiredSessions(); n > 0 {
				logger.Debug("expired sessions removed", slog.Int("count", n))
			}
		}
	}
}

// findStaticDir looks for the static files directory
func findStaticDir() string {
	candidates := []string{
		"static",
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	return ""
}
