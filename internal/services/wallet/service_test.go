package wallet

import (
	"context"
	"testing"
	"time"

	apperrors "paywallet/internal/errors"
	"paywallet/internal/models"
	"paywallet/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletService_GetWallet(t *testing.T) {
	store := testutil.NewStore(t)
	c, mr := testutil.NewCache(t)
	svc := NewService(store, c, time.Minute)
	ctx := context.Background()

	user, w := testutil.CreateUser(t, store, "u@example.com", models.RoleUser, "50")

	t.Run("loads from the store and caches", func(t *testing.T) {
		got, err := svc.GetWallet(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, w.ID, got.ID)
		assert.True(t, got.Balance.Equal(testutil.Dec("50")))
		assert.True(t, mr.Exists("wallet:user:1"))
	})

	t.Run("serves the cached snapshot", func(t *testing.T) {
		require.NoError(t, store.Wallets().Credit(ctx, w.ID, testutil.Dec("10")))

		got, err := svc.GetWallet(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, got.Balance.Equal(testutil.Dec("50")), "stale until invalidated")

		mr.Del("wallet:user:1")
		got, err = svc.GetWallet(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, got.Balance.Equal(testutil.Dec("60")))
	})

	t.Run("missing wallet", func(t *testing.T) {
		_, err := svc.GetWallet(ctx, 999)
		assert.ErrorIs(t, err, apperrors.ErrWalletNotFound)
	})

	t.Run("falls back to the store when redis is down", func(t *testing.T) {
		mr.Close()
		got, err := svc.GetWallet(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, w.ID, got.ID)
	})
}

func TestWalletService_BlockAndUnblock(t *testing.T) {
	store := testutil.NewStore(t)
	c, mr := testutil.NewCache(t)
	svc := NewService(store, c, time.Minute)
	ctx := context.Background()

	user, _ := testutil.CreateUser(t, store, "u@example.com", models.RoleUser, "50")
	_, err := svc.GetWallet(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists("wallet:user:1"))

	blocked, err := svc.BlockWallet(ctx, user.ID, "  ")
	require.NoError(t, err)
	assert.Equal(t, models.WalletStatusBlocked, blocked.Status)
	assert.Equal(t, "blocked by administrator", blocked.StatusReason)
	assert.False(t, mr.Exists("wallet:user:1"))

	got, err := svc.GetWallet(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive())

	active, err := svc.UnblockWallet(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, active.IsActive())
	assert.Empty(t, active.StatusReason)

	_, err = svc.BlockWallet(ctx, 999, "fraud")
	assert.ErrorIs(t, err, apperrors.ErrWalletNotFound)
}

func TestNewService_PanicsWithoutDependencies(t *testing.T) {
	c, _ := testutil.NewCache(t)
	assert.Panics(t, func() { NewService(nil, c, time.Minute) })
	assert.Panics(t, func() { NewService(testutil.NewStore(t), nil, time.Minute) })
}
