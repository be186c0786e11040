package wallet

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "paywallet/internal/errors"
	"paywallet/internal/models"
	"paywallet/internal/repositories"
	"paywallet/internal/repositories/cache"

	"go.uber.org/zap"
)

type Service interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	BlockWallet(ctx context.Context, userID uint, reason string) (*models.Wallet, error)
	UnblockWallet(ctx context.Context, userID uint) (*models.Wallet, error)
}

type service struct {
	store    *repositories.Store
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewService creates a new wallet service
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

func (s *service) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	// Try cache first
	if wallet, ok := s.cachedWallet(ctx, userID); ok {
		return wallet, nil
	}

	wallet, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.cacheWallet(ctx, wallet)
	return wallet, nil
}

func (s *service) BlockWallet(ctx context.Context, userID uint, reason string) (*models.Wallet, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "blocked by administrator"
	}
	return s.setStatus(ctx, userID, models.WalletStatusBlocked, reason)
}

func (s *service) UnblockWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	return s.setStatus(ctx, userID, models.WalletStatusActive, "")
}

func (s *service) setStatus(ctx context.Context, userID uint, status models.WalletStatus, reason string) (*models.Wallet, error) {
	wallet, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Wallets().UpdateStatus(ctx, wallet.ID, status, reason); err != nil {
		zap.L().Error("failed to update wallet status",
			zap.Uint("wallet_id", wallet.ID),
			zap.String("status", string(status)),
			zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	s.invalidate(ctx, userID)

	zap.L().Info("wallet status changed",
		zap.Uint("user_id", userID),
		zap.Uint("wallet_id", wallet.ID),
		zap.String("status", string(status)),
		zap.String("reason", reason))

	return s.load(ctx, userID)
}

func (s *service) load(ctx context.Context, userID uint) (*models.Wallet, error) {
	wallet, err := s.store.Wallets().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		zap.L().Error("failed to load wallet", zap.Uint("user_id", userID), zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	return wallet, nil
}
