package cache

import (
	"context"
	"fmt"

	"paywallet/internal/config"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Connect builds the client and verifies the server answers.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := NewRedisClient(cfg)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return client, nil
}
