package systemconfig

import (
	"context"
	"testing"
	"time"

	apperrors "paywallet/internal/errors"
	"paywallet/internal/models"
	"paywallet/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestGetConfigCreatesDefaults(t *testing.T) {
	store := testutil.NewStore(t)
	c, mr := testutil.NewCache(t)
	svc := NewService(store, c, time.Minute)

	cfg, err := svc.GetConfig(context.Background())
	require.NoError(t, err)

	def := models.DefaultSystemConfig()
	assert.True(t, cfg.SendMoneyFee.Equal(def.SendMoneyFee))
	assert.True(t, cfg.CashInFee.Equal(def.CashInFee))
	assert.True(t, cfg.WithdrawFee.Equal(def.WithdrawFee))
	assert.True(t, cfg.AgentCommissionRate.Equal(def.AgentCommissionRate))
	assert.True(t, cfg.DailyLimit.Equal(def.DailyLimit))
	assert.True(t, cfg.MonthlyLimit.Equal(def.MonthlyLimit))
	assert.True(t, cfg.MinBalance.Equal(def.MinBalance))

	assert.True(t, mr.Exists("system_config:singleton:1"))
	assert.Equal(t, time.Minute, mr.TTL("system_config:singleton:1"))
}

func TestGetConfigServesFromCache(t *testing.T) {
	store := testutil.NewStore(t)
	c, _ := testutil.NewCache(t)
	svc := NewService(store, c, time.Minute)
	ctx := context.Background()

	_, err := svc.GetConfig(ctx)
	require.NoError(t, err)

	// A write that bypasses the service is not visible until the cache expires.
	require.NoError(t, store.DB().Model(&models.SystemConfig{}).
		Where("id = ?", models.SystemConfigID).
		Update("send_money_fee", decimal.NewFromInt(42)).Error)

	cfg, err := svc.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "5", cfg.SendMoneyFee.String())
}

func TestUpdateConfigPartialRoundTrip(t *testing.T) {
	store := testutil.NewStore(t)
	c, _ := testutil.NewCache(t)
	svc := NewService(store, c, time.Minute)
	ctx := context.Background()

	before, err := svc.GetConfig(ctx)
	require.NoError(t, err)

	updated, err := svc.UpdateConfig(ctx, ConfigUpdate{SendMoneyFee: dec("10")})
	require.NoError(t, err)
	assert.Equal(t, "10", updated.SendMoneyFee.String())

	after, err := svc.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10", after.SendMoneyFee.String())
	assert.True(t, after.CashInFee.Equal(before.CashInFee))
	assert.True(t, after.WithdrawFee.Equal(before.WithdrawFee))
	assert.True(t, after.AgentCommissionRate.Equal(before.AgentCommissionRate))
	assert.True(t, after.DailyLimit.Equal(before.DailyLimit))
	assert.True(t, after.MonthlyLimit.Equal(before.MonthlyLimit))
	assert.True(t, after.MinBalance.Equal(before.MinBalance))
}

func TestUpdateConfigWinsOverSlowReader(t *testing.T) {
	store := testutil.NewStore(t)
	c, mr := testutil.NewCache(t)
	svc := NewService(store, c, time.Minute).(*service)
	ctx := context.Background()

	// a reader misses the cache and loads the row before the update lands
	stale, err := store.SystemConfig().GetOrCreate(ctx, models.DefaultSystemConfig())
	require.NoError(t, err)

	_, err = svc.UpdateConfig(ctx, ConfigUpdate{SendMoneyFee: dec("7")})
	require.NoError(t, err)
	assert.True(t, mr.Exists("system_config:singleton:1"))

	svc.fill(ctx, stale)

	cfg, err := svc.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "7", cfg.SendMoneyFee.String())
}

func TestUpdateConfigBeforeFirstRead(t *testing.T) {
	store := testutil.NewStore(t)
	c, _ := testutil.NewCache(t)
	svc := NewService(store, c, time.Minute)

	cfg, err := svc.UpdateConfig(context.Background(), ConfigUpdate{DailyLimit: dec("1000")})
	require.NoError(t, err)
	assert.Equal(t, "1000", cfg.DailyLimit.String())
	assert.Equal(t, "5", cfg.SendMoneyFee.String())
}

func TestUpdateConfigValidation(t *testing.T) {
	store := testutil.NewStore(t)
	c, _ := testutil.NewCache(t)
	svc := NewService(store, c, time.Minute)
	ctx := context.Background()

	_, err := svc.UpdateConfig(ctx, ConfigUpdate{})
	assert.ErrorIs(t, err, apperrors.ErrNoValidFields)

	_, err = svc.UpdateConfig(ctx, ConfigUpdate{WithdrawFee: dec("-1")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	cfg, err := svc.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.5", cfg.WithdrawFee.String())
}

func TestNewServicePanicsWithoutDependencies(t *testing.T) {
	c, _ := testutil.NewCache(t)
	assert.Panics(t, func() { NewService(nil, c, time.Minute) })
	assert.Panics(t, func() { NewService(testutil.NewStore(t), nil, time.Minute) })
}
