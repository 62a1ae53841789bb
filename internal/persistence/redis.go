package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/user-console/internal/config"
	"github.com/spec-kit/user-console/internal/domain"
)

// RedisAdapter persists the snapshot as a single JSON value in Redis.
type RedisAdapter struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisAdapter connects to Redis using the provided configuration.
func NewRedisAdapter(cfg config.RedisConfig, logger *zap.Logger) *RedisAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &RedisAdapter{client: client, logger: logger}
}

// Load fetches and decodes the snapshot value for the key.
func (a *RedisAdapter) Load(ctx context.Context, key string) ([]domain.User, bool, error) {
	val, err := a.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var users []domain.User
	if err := json.Unmarshal([]byte(val), &users); err != nil {
		return nil, false, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return users, true, nil
}

// Save encodes and stores the snapshot value for the key.
func (a *RedisAdapter) Save(ctx context.Context, key string, users []domain.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}
	if err := a.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close closes the client.
func (a *RedisAdapter) Close() {
	if a != nil && a.client != nil {
		_ = a.client.Close()
	}
}

// Ping verifies Redis connectivity.
func (a *RedisAdapter) Ping(ctx context.Context) error {
	if a == nil || a.client == nil {
		return errors.New("redis client not configured")
	}
	return a.client.Ping(ctx).Err()
}
