package repositories

import (
	"context"
	"errors"
	"fmt"

	"paywallet/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{
		db: db,
	}
}

func (r *walletRepository) Create(ctx context.Context, wallet *models.Wallet) error {
	if err := r.db.WithContext(ctx).Create(wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateWallet
		}
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) GetByID(ctx context.Context, id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.WithContext(ctx).First(&wallet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

// Balance arithmetic is rounded to the column scale in SQL. SQLite keeps
// NUMERIC values as REAL, so unrounded sums drift off the stored cents.
const (
	debitExpr  = "ROUND(balance - ?, 4)"
	creditExpr = "ROUND(balance + ?, 4)"
)

func (r *walletRepository) DebitIfSufficient(ctx context.Context, id uint, amount, floor decimal.Decimal) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ? AND balance >= ?", id, amount.Add(floor)).
		Update("balance", gorm.Expr(debitExpr, amount))
	if result.Error != nil {
		return false, fmt.Errorf("failed to debit wallet: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *walletRepository) Credit(ctx context.Context, id uint, amount decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr(creditExpr, amount))
	if result.Error != nil {
		return fmt.Errorf("failed to credit wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWalletNotFound
	}
	return nil
}

func (r *walletRepository) UpdateStatus(ctx context.Context, id uint, status models.WalletStatus, reason string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "status_reason": reason})
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWalletNotFound
	}
	return nil
}
