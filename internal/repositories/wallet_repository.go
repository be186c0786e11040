package repositories

import (
	"context"
	"errors"

	"paywallet/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrWalletNotFound  = errors.New("wallet not found")
	ErrDuplicateWallet = errors.New("wallet already exists")
)

// WalletRepository is the balance store. Debits are always conditional.
type WalletRepository interface {
	Create(ctx context.Context, wallet *models.Wallet) error
	GetByID(ctx context.Context, id uint) (*models.Wallet, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error)

	// DebitIfSufficient subtracts amount in a single guarded update. It
	// returns false without error when the balance would fall below floor.
	DebitIfSufficient(ctx context.Context, id uint, amount, floor decimal.Decimal) (bool, error)
	Credit(ctx context.Context, id uint, amount decimal.Decimal) error

	UpdateStatus(ctx context.Context, id uint, status models.WalletStatus, reason string) error
}
