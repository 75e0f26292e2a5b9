package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/seekmark/seekmark/internal/config"
	"github.com/seekmark/seekmark/internal/domain"
	"github.com/seekmark/seekmark/internal/httpserver"
	"github.com/seekmark/seekmark/internal/httpserver/deps"
	"github.com/seekmark/seekmark/internal/logger"
	"github.com/seekmark/seekmark/internal/notify"
	"github.com/seekmark/seekmark/internal/redis"
	"github.com/seekmark/seekmark/internal/scheduler"
	"github.com/seekmark/seekmark/internal/sources/defaults"
	redisstore "github.com/seekmark/seekmark/internal/store/redis"
	"github.com/seekmark/seekmark/internal/version"
)

type App struct {
	cfg          *config.Config
	logger       logger.Logger
	server       *httpserver.Server
	redisClient  *goredis.Client
	hub          *notify.Hub
	seedImporter *scheduler.SeedImporter
	sweeper      *scheduler.SessionSweeper
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Initialize Redis store
	store := redisstore.NewStore(redisClient)

	// Resolve first-run defaults, optionally overridden from a file
	firstRunSettings := domain.DefaultSettings()
	firstRunTags := domain.DefaultTags()
	if cfg.DefaultsFile != "" {
		overrides, err := defaults.NewLoader(cfg.DefaultsFile).Load()
		if err != nil {
			loggerClient.Warn("failed to load defaults file, using built-ins",
				logger.String("file", cfg.DefaultsFile),
				logger.Error(err))
		} else {
			firstRunSettings, firstRunTags = overrides.Resolve()
			loggerClient.Info("first-run defaults loaded from file",
				logger.String("file", cfg.DefaultsFile))
		}
	}

	// Install first-run records (never overwrites existing state)
	if err := store.EnsureDefaults(context.Background(), firstRunSettings, firstRunTags); err != nil {
		loggerClient.Errorf("Failed to initialize store: %v", err)
		os.Exit(1)
	}

	// Hub for connected UI sessions
	hub := notify.NewHub()

	// Initialize seed importer (if a seed file is configured)
	var seedImporter *scheduler.SeedImporter
	var seedReloadTrigger chan struct{}
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured, initializing seed importer",
			logger.String("file", cfg.SeedFile))
		seedReloadTrigger = make(chan struct{}, 1)
		seedImporter = scheduler.NewSeedImporter(
			cfg.SeedFile,
			store,
			hub,
			loggerClient,
			cfg.SeedReloadInterval,
			seedReloadTrigger,
		)
	} else {
		loggerClient.Info("seed file not configured, seed import disabled")
	}

	// Initialize session sweeper
	sweeper := scheduler.NewSessionSweeper(hub, loggerClient, cfg.SweepInterval, cfg.SessionTTL)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		TimeNow:           time.Now,
		RedisClient:       redisClient,
		Store:             store,
		Hub:               hub,
		WatchURLBase:      cfg.WatchURLBase,
		AllowedOrigins:    cfg.AllowedOrigins,
		SeedReloadTrigger: seedReloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:          cfg,
		logger:       loggerClient,
		server:       server,
		redisClient:  redisClient,
		hub:          hub,
		seedImporter: seedImporter,
		sweeper:      sweeper,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Seekmark v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Seekmark %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start seed importer (if enabled)
	if a.seedImporter != nil {
		if err := a.seedImporter.Start(ctx); err != nil {
			return fmt.Errorf("failed to start seed importer: %w", err)
		}
		a.logger.Info("seed importer started",
			logger.Duration("interval", a.cfg.SeedReloadInterval))
	}

	// Start session sweeper
	if err := a.sweeper.Start(ctx); err != nil {
		return fmt.Errorf("failed to start session sweeper: %w", err)
	}
	a.logger.Info("session sweeper started",
		logger.Duration("interval", a.cfg.SweepInterval),
		logger.Duration("ttl", a.cfg.SessionTTL))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// Stop seed importer
	if a.seedImporter != nil {
		a.seedImporter.Stop()
	}

	// Stop session sweeper
	a.sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Seekmark stopped cleanly")
	return nil
}
