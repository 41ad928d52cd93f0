package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/fleet-analytics/internal/aggregation"
	"github.com/aevon-lab/fleet-analytics/internal/analytics"
	"github.com/aevon-lab/fleet-analytics/internal/cache"
	fleet "github.com/aevon-lab/fleet-analytics/internal/core/analytics"
	corecfg "github.com/aevon-lab/fleet-analytics/internal/core/config"
	"github.com/aevon-lab/fleet-analytics/internal/core/storage"
	"github.com/aevon-lab/fleet-analytics/internal/core/storage/postgres"
	"github.com/aevon-lab/fleet-analytics/internal/core/storage/snapshot"
	"github.com/aevon-lab/fleet-analytics/internal/ingestion"
	"github.com/aevon-lab/fleet-analytics/internal/migrations"
	"github.com/aevon-lab/fleet-analytics/internal/server"
	"github.com/aevon-lab/fleet-analytics/internal/telemetry"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP ingestion and analytics server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "fleet.yaml", "Path to configuration file")
	return cmd
}

func serve(ctx context.Context, configPath string) error {
	// Load .env if present.
	_ = godotenv.Load()

	// 1. Load Configuration
	cfg, err := corecfg.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("Loaded config", "backend", cfg.Database.Backend, "addr", cfg.Server.Addr(), "cache", cfg.Cache.Backend)

	shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry.Endpoint, version, cfg.Telemetry.Insecure)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			slog.Warn("Telemetry shutdown failed", "error", err)
		}
	}()

	// 2. Initialize Storage
	repo, err := openRepository(cfg.Database)
	if err != nil {
		return err
	}
	defer repo.Close()

	// 3. Analytics engine, cache and services
	params, err := cfg.Analytics.Params()
	if err != nil {
		return err
	}
	pool := aggregation.NewWorkerPool(cfg.Analytics.WorkerCount)
	engine := fleet.NewEngine(params, pool)

	memo, err := openMemoizer(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer memo.Close()

	analyticsSvc := analytics.NewService(repo, engine, memo)
	ingestionSvc := ingestion.NewService(repo, memo, cfg.Server.MaxBodySizeMB)

	slog.Info("Analytics engine initialized",
		"lookback", params.Lookback,
		"worker_count", pool.Workers(),
		"cache_enabled", memo != nil,
	)

	// 4. Initialize Server
	srv := server.New(cfg.Server.Addr(), repo, cfg.Server.Mode)
	ingestionSvc.RegisterRoutes(srv.Engine)
	analyticsSvc.RegisterRoutes(srv.Engine)

	// 5. Start Services. HTTP server and refresher stop together on signal
	// or on the first failure.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })

	if cfg.Refresher.Enabled {
		interval, timeout := cfg.Refresher.Durations()
		refresher := aggregation.NewRefresher(interval, analyticsSvc, timeout)
		g.Go(func() error { return refresher.Start(gctx) })
	} else {
		slog.Info("Cache refresher disabled by config")
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}

	slog.Info("Shutdown complete")
	return nil
}

func openRepository(cfg corecfg.DatabaseConfig) (storage.Repository, error) {
	switch cfg.Backend {
	case corecfg.BackendSnapshot:
		store, err := snapshot.Open(cfg.SnapshotPath)
		if err != nil {
			return nil, fmt.Errorf("open snapshot store: %w", err)
		}
		return store, nil
	default:
		db, err := postgres.Open(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
		if err != nil {
			return nil, fmt.Errorf("initialize database: %w", err)
		}
		if err := migrations.RunMigrations(db, cfg.AutoMigrate); err != nil {
			db.Close()
			return nil, fmt.Errorf("run database migrations: %w", err)
		}
		adapter, err := postgres.NewAdapterFromDB(db)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("initialize database: %w", err)
		}
		return adapter, nil
	}
}

// openMemoizer returns nil when caching is disabled.
func openMemoizer(ctx context.Context, cfg corecfg.CacheConfig) (*cache.Memoizer, error) {
	if !cfg.Enabled {
		slog.Info("Analytics cache disabled by config")
		return nil, nil
	}

	var store cache.Store
	switch cfg.Backend {
	case corecfg.CacheBackendRedis:
		redisStore, err := cache.NewRedisStore(ctx, cache.RedisOptions{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("connect analytics cache: %w", err)
		}
		store = redisStore
	default:
		store = cache.NewMemoryStore(cfg.Capacity)
	}

	return cache.NewMemoizer(store, cfg.TTLDuration()), nil
}
