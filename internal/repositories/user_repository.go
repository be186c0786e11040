package repositories

import (
	"context"
	"errors"

	"paywallet/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already taken")
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByIDForUpdate takes a row lock on the user for the rest of the
	// enclosing transaction where the database supports it.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.User, error)

	// UpdateLimitCounters persists the daily and monthly spend counters.
	UpdateLimitCounters(ctx context.Context, user *models.User) error

	UpdateAgentApproval(ctx context.Context, id uint, status models.ApprovalStatus, rate decimal.NullDecimal) error
}
