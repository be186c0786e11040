// Package systemconfig serves the singleton fee and limit configuration.
package systemconfig

import (
	"context"
	"time"

	apperrors "paywallet/internal/errors"
	"paywallet/internal/models"
	"paywallet/internal/repositories"
	"paywallet/internal/repositories/cache"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ConfigUpdate is a partial update. Nil fields are left untouched.
type ConfigUpdate struct {
	SendMoneyFee        *decimal.Decimal `json:"sendMoneyFee"`
	CashInFee           *decimal.Decimal `json:"cashInFee"`
	WithdrawFee         *decimal.Decimal `json:"withdrawFee"`
	AgentCommissionRate *decimal.Decimal `json:"agentCommissionRate"`
	DailyLimit          *decimal.Decimal `json:"dailyLimit"`
	MonthlyLimit        *decimal.Decimal `json:"monthlyLimit"`
	MinBalance          *decimal.Decimal `json:"minBalance"`
}

func (u ConfigUpdate) fields() (map[string]interface{}, error) {
	columns := []struct {
		column string
		value  *decimal.Decimal
	}{
		{"send_money_fee", u.SendMoneyFee},
		{"cash_in_fee", u.CashInFee},
		{"withdraw_fee", u.WithdrawFee},
		{"agent_commission_rate", u.AgentCommissionRate},
		{"daily_limit", u.DailyLimit},
		{"monthly_limit", u.MonthlyLimit},
		{"min_balance", u.MinBalance},
	}

	fields := make(map[string]interface{})
	for _, c := range columns {
		if c.value == nil {
			continue
		}
		if c.value.IsNegative() {
			return nil, apperrors.Newf(apperrors.CodeInvalidAmount, "%s cannot be negative", c.column)
		}
		fields[c.column] = *c.value
	}
	return fields, nil
}

type Service interface {
	GetConfig(ctx context.Context) (*models.SystemConfig, error)
	UpdateConfig(ctx context.Context, update ConfigUpdate) (*models.SystemConfig, error)
}

type service struct {
	store    *repositories.Store
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewService(store *repositories.Store, c cache.Cache, cacheTTL time.Duration) Service {
	if store == nil {
		panic("store is required")
	}
	if c == nil {
		panic("cache is required")
	}
	return &service{
		store:    store,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func (s *service) cacheKey() string {
	return s.cache.GenerateKey("system_config", "singleton", models.SystemConfigID)
}

// GetConfig returns the cached singleton, loading (and if needed creating)
// it from the store on a miss. A loaded row only fills an empty slot so a
// slow reader cannot overwrite the snapshot written by UpdateConfig.
func (s *service) GetConfig(ctx context.Context) (*models.SystemConfig, error) {
	var cached models.SystemConfig
	found, err := s.cache.Get(ctx, s.cacheKey(), &cached)
	if err != nil {
		zap.L().Warn("system config cache read failed", zap.Error(err))
	}
	if found {
		return &cached, nil
	}

	cfg, err := s.store.SystemConfig().GetOrCreate(ctx, models.DefaultSystemConfig())
	if err != nil {
		zap.L().Error("failed to load system config", zap.Error(err))
		return nil, apperrors.Internal(err)
	}

	s.fill(ctx, cfg)
	return cfg, nil
}

func (s *service) fill(ctx context.Context, cfg *models.SystemConfig) {
	if _, err := s.cache.SetIfAbsent(ctx, s.cacheKey(), cfg, s.cacheTTL); err != nil {
		zap.L().Warn("system config cache write failed", zap.Error(err))
	}
}

func (s *service) UpdateConfig(ctx context.Context, update ConfigUpdate) (*models.SystemConfig, error) {
	fields, err := update.fields()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, apperrors.ErrNoValidFields
	}

	if _, err := s.store.SystemConfig().GetOrCreate(ctx, models.DefaultSystemConfig()); err != nil {
		zap.L().Error("failed to load system config", zap.Error(err))
		return nil, apperrors.Internal(err)
	}

	cfg, err := s.store.SystemConfig().Update(ctx, fields)
	if err != nil {
		zap.L().Error("failed to update system config", zap.Error(err))
		return nil, apperrors.Internal(err)
	}

	if err := s.cache.SetWithTTL(ctx, s.cacheKey(), cfg, s.cacheTTL); err != nil {
		zap.L().Warn("system config cache refresh failed", zap.Error(err))
		if err := s.cache.Delete(ctx, s.cacheKey()); err != nil {
			zap.L().Warn("system config cache invalidation failed", zap.Error(err))
		}
	}

	zap.L().Info("system config updated", zap.Int("fields", len(fields)))
	return cfg, nil
}
