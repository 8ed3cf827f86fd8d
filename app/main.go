package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/news-map/app/api"
	"github.com/lysyi3m/news-map/app/cache"
	"github.com/lysyi3m/news-map/app/cfg"
	"github.com/lysyi3m/news-map/app/classify"
	"github.com/lysyi3m/news-map/app/database"
	"github.com/lysyi3m/news-map/app/feed"
	"github.com/lysyi3m/news-map/app/news"
	"github.com/lysyi3m/news-map/app/region"
	"github.com/lysyi3m/news-map/app/tasks"
	"golang.org/x/time/rate"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		return
	}

	setupLogger(appCfg.Debug)

	if err := run(appCfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

func run(appCfg *cfg.Cfg) error {
	slog.Info("Starting News Map server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	configCache := region.NewConfigCache(appCfg.RegionsDir)
	if err := configCache.Run(); err != nil {
		return fmt.Errorf("failed to load region configurations: %w", err)
	}

	regionRepo := database.NewRegionRepository(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	synced := tasks.SyncRegions(ctx, configCache.GetConfigs(), regionRepo)
	slog.Info("Region configurations synced", "dir", appCfg.RegionsDir, "loaded", configCache.GetConfigCount(), "synced", synced)

	var limiter *rate.Limiter
	if appCfg.FetchRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(appCfg.FetchRate), appCfg.FetchBurst)
	}
	fetcher := feed.NewFetcher(feed.NewHTTPClient(appCfg.FetchTimeout), feed.NewParser(), appCfg.UserAgent, appCfg.FetchTimeout, limiter)

	resultCache, err := newResultCache(ctx, appCfg)
	if err != nil {
		return err
	}
	defer resultCache.Close()

	aggregator := news.NewAggregator(regionRepo, fetcher, classify.Default(), appCfg.MaxLimit)
	service := news.NewService(aggregator, resultCache)

	scheduler := tasks.NewScheduler(configCache, regionRepo, service, appCfg.WarmInterval, appCfg.WorkerCount, appCfg.DefaultLimit)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(service, regionRepo, resultCache, scheduler, appCfg.DefaultLimit, appCfg.Version)

	httpServer := &http.Server{
		Addr:              ":" + appCfg.Port,
		Handler:           api.NewServer(handler),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      appCfg.FetchTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("HTTP server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("News Map server stopped")
	return nil
}

// newResultCache picks Redis when an address is configured and the
// bounded in-memory cache otherwise.
func newResultCache(ctx context.Context, appCfg *cfg.Cfg) (cache.Backend, error) {
	if appCfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(ctx, appCfg.RedisAddr, appCfg.CacheTTL)
		if err != nil {
			return nil, err
		}
		return redisCache, nil
	}

	memoryCache := cache.NewMemoryCache(appCfg.CacheSize, appCfg.CacheTTL)
	slog.Info("Using in-memory result cache", "ttl", appCfg.CacheTTL, "size", appCfg.CacheSize)

	return memoryCache, nil
}
