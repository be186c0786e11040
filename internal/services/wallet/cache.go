package wallet

import (
	"context"

	"paywallet/internal/models"

	"go.uber.org/zap"
)

func (s *service) cachedWallet(ctx context.Context, userID uint) (*models.Wallet, bool) {
	var wallet models.Wallet
	found, err := s.cache.Get(ctx, s.cache.WalletKey(userID), &wallet)
	if err != nil {
		zap.L().Warn("wallet cache read failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}
	return &wallet, true
}

func (s *service) cacheWallet(ctx context.Context, wallet *models.Wallet) {
	if err := s.cache.CacheWallet(ctx, wallet, s.cacheTTL); err != nil {
		zap.L().Warn("wallet cache write failed", zap.Uint("user_id", wallet.UserID), zap.Error(err))
	}
}

// invalidate drops the cached snapshot of the user's wallet
func (s *service) invalidate(ctx context.Context, userID uint) {
	if err := s.cache.InvalidateWallet(ctx, userID); err != nil {
		zap.L().Warn("wallet cache invalidation failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}
