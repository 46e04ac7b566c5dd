package db

import (
	"context"
	"fmt"
	"time"

	"taskmanager/internal/config"
	"taskmanager/internal/logger"

	"github.com/redis/go-redis/v9"
)

// RedisOptions builds client options from REDIS_URL, falling back to
// REDIS_ADDR/REDIS_PASSWORD/REDIS_DB.
func RedisOptions(cfg *config.Config) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("REDIS_URL: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

// ConnectRedis returns nil when Redis is not configured or unreachable; the
// cache is optional and the API keeps serving from Postgres without it.
func ConnectRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if !cfg.RedisEnabled() {
		logger.Info("redis not configured, task cache disabled")
		return nil
	}
	opts, err := RedisOptions(cfg)
	if err != nil {
		logger.Warn("invalid redis config, task cache disabled", "error", err)
		return nil
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		logger.Warn("redis ping failed, task cache disabled", "addr", opts.Addr, "error", err)
		return nil
	}

	logger.Info("redis connected", "addr", opts.Addr)
	return rdb
}
