package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"paywallet/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := r.db.WithContext(ctx).Omit("Wallet").Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return r.first(r.db.WithContext(ctx), "id = ?", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(r.db.WithContext(ctx), "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *userRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.User, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
}

func (r *userRepository) first(db *gorm.DB, query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := db.Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) UpdateLimitCounters(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"daily_transaction_total":   user.DailyTransactionTotal,
			"monthly_transaction_total": user.MonthlyTransactionTotal,
			"last_daily_reset":          user.LastDailyReset,
			"last_monthly_reset":        user.LastMonthlyReset,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update limit counters: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdateAgentApproval(ctx context.Context, id uint, status models.ApprovalStatus, rate decimal.NullDecimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ?", id, models.RoleAgent).
		Updates(map[string]interface{}{
			"approval_status": status,
			"commission_rate": rate,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update agent approval: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
