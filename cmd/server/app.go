package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"estimator/internal/cache"
	"estimator/internal/cleaner"
	"estimator/internal/config"
	"estimator/internal/logging"
	"estimator/internal/repository"
	"estimator/internal/service"
)

// app holds the dependencies shared by every command.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	repo    *repository.Repository
	redis   *redis.Client
	dataset *service.DatasetService
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logger}

	dsn := cfg.DatabaseDSN()
	a.repo, err = repository.NewRepository(
		cfg.Database.Driver,
		dsn,
		cfg.Database.MaxConnections,
		cfg.Database.MaxIdleConnections,
	)
	if err != nil {
		a.close()
		return nil, err
	}
	logger.Info("Connected to database",
		zap.String("driver", cfg.Database.Driver),
		zap.String("dsn", logging.SanitizeDSN(dsn)))

	if cfg.Database.AutoMigrate {
		if err := a.repo.EnsureSchema(ctx); err != nil {
			a.close()
			return nil, err
		}
	}

	var ranges cache.RangeCache
	if cfg.Redis.Addr != "" {
		a.redis, err = cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			a.close()
			return nil, err
		}
		ranges = cache.NewRedisCache(a.redis, cfg.Redis.RangesTTL)
		logger.Info("Using Redis range cache", zap.String("addr", cfg.Redis.Addr))
	} else {
		ranges = cache.NewMemoryCache(cfg.Redis.RangesTTL)
		logger.Info("Using in-process range cache")
	}

	sanitizer := cleaner.NewSanitizer(cfg.Cleaning.SanitizerOptions(), logger)
	a.dataset = service.NewDatasetService(a.repo, sanitizer, ranges, logger)
	return a, nil
}

func (a *app) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.repo != nil {
		_ = a.repo.Close()
	}
	_ = a.logger.Sync()
}
