package database

import (
	"context"
	"fmt"

	"workspace-service/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedis connects to Redis and verifies the connection. A nil client is
// returned on failure so callers can degrade to DB-only operation.
func NewRedis(cfg *config.Config, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis unavailable, running without cache and realtime delivery", zap.Error(err))
		return nil
	}

	logger.Info("redis connection established",
		zap.String("host", cfg.Redis.Host),
		zap.Int("db", cfg.Redis.DB),
	)
	return client
}
