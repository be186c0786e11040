package cache

import (
	"context"
	"testing"
	"time"

	"paywallet/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheService(client, time.Hour), mr
}

func TestCacheServiceRoundTrip(t *testing.T) {
	svc, mr := newTestCache(t)
	ctx := context.Background()

	wallet := &models.Wallet{ID: 7, UserID: 3, Balance: decimal.RequireFromString("499.25"), Status: models.WalletStatusActive}
	require.NoError(t, svc.CacheWallet(ctx, wallet, 0))
	assert.True(t, mr.Exists("wallet:user:3"))
	assert.Equal(t, time.Hour, mr.TTL("wallet:user:3"))

	var got models.Wallet
	found, err := svc.Get(ctx, "wallet:user:3", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, got.Balance.Equal(wallet.Balance))
	assert.Equal(t, uint(7), got.ID)

	require.NoError(t, svc.InvalidateWallet(ctx, 3, 0, 4))
	found, err = svc.Get(ctx, "wallet:user:3", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, svc.CacheWallet(ctx, wallet, time.Minute))
	assert.Equal(t, time.Minute, mr.TTL(svc.WalletKey(3)))
	require.NoError(t, svc.InvalidateWallet(ctx, 0))
	assert.True(t, mr.Exists("wallet:user:3"))
}

func TestCacheServiceMissAndTTL(t *testing.T) {
	svc, mr := newTestCache(t)
	ctx := context.Background()

	var v map[string]string
	found, err := svc.Get(ctx, "missing", &v)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, svc.SetWithTTL(ctx, "short", map[string]string{"a": "b"}, time.Minute))
	mr.FastForward(2 * time.Minute)
	found, err = svc.Get(ctx, "short", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheServiceHealthCheck(t *testing.T) {
	svc, mr := newTestCache(t)
	require.NoError(t, svc.HealthCheck(context.Background()))

	mr.Close()
	assert.Error(t, svc.HealthCheck(context.Background()))
}

func TestGenerateKey(t *testing.T) {
	svc, _ := newTestCache(t)
	assert.Equal(t, "system_config:singleton:1", svc.GenerateKey("system_config", "singleton", 1))
}

func TestSetIfAbsentKeepsExistingValue(t *testing.T) {
	svc, mr := newTestCache(t)
	ctx := context.Background()

	stored, err := svc.SetIfAbsent(ctx, "k", map[string]string{"v": "first"}, time.Minute)
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = svc.SetIfAbsent(ctx, "k", map[string]string{"v": "second"}, time.Minute)
	require.NoError(t, err)
	assert.False(t, stored)

	var v map[string]string
	found, err := svc.Get(ctx, "k", &v)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "first", v["v"])
	assert.Equal(t, time.Minute, mr.TTL("k"))
}
