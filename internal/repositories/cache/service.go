package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"paywallet/internal/models"

	"github.com/redis/go-redis/v9"
)

// Cache is the subset of CacheService the services depend on.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	SetIfAbsent(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	GenerateKey(entityType, keyType string, value interface{}) string
	WalletKey(userID uint) string
	CacheWallet(ctx context.Context, wallet *models.Wallet, ttl time.Duration) error
	InvalidateWallet(ctx context.Context, userIDs ...uint) error
}

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// SetIfAbsent stores value only when key is not already cached.
func (s *CacheService) SetIfAbsent(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.SetNX(ctx, key, data, ttl).Result()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Wallet snapshots
func (s *CacheService) WalletKey(userID uint) string {
	return s.GenerateKey("wallet", "user", userID)
}

func (s *CacheService) CacheWallet(ctx context.Context, wallet *models.Wallet, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.ttl
	}
	return s.SetWithTTL(ctx, s.WalletKey(wallet.UserID), wallet, ttl)
}

// InvalidateWallet drops the snapshots of the given users. Zero ids are skipped.
func (s *CacheService) InvalidateWallet(ctx context.Context, userIDs ...uint) error {
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if id != 0 {
			keys = append(keys, s.WalletKey(id))
		}
	}
	return s.Delete(ctx, keys...)
}

func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
