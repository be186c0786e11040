package repositories

import (
	"context"
	"errors"
	"fmt"

	"paywallet/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SystemConfigRepository persists the singleton configuration row under
// models.SystemConfigID.
type SystemConfigRepository interface {
	GetOrCreate(ctx context.Context, defaults models.SystemConfig) (*models.SystemConfig, error)
	Update(ctx context.Context, fields map[string]interface{}) (*models.SystemConfig, error)
}

type systemConfigRepository struct {
	db *gorm.DB
}

func NewSystemConfigRepository(db *gorm.DB) SystemConfigRepository {
	return &systemConfigRepository{db: db}
}

// GetOrCreate reads the singleton. When it is missing, the defaults are
// inserted with ON CONFLICT DO NOTHING so concurrent first reads converge on
// one row.
func (r *systemConfigRepository) GetOrCreate(ctx context.Context, defaults models.SystemConfig) (*models.SystemConfig, error) {
	cfg, err := r.get(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get system config: %w", err)
	}

	defaults.ID = models.SystemConfigID
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&defaults).Error; err != nil {
		return nil, fmt.Errorf("failed to create system config: %w", err)
	}

	cfg, err = r.get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get system config: %w", err)
	}
	return cfg, nil
}

func (r *systemConfigRepository) Update(ctx context.Context, fields map[string]interface{}) (*models.SystemConfig, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SystemConfig{}).
		Where("id = ?", models.SystemConfigID).
		Updates(fields)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update system config: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("failed to update system config: %w", gorm.ErrRecordNotFound)
	}
	return r.get(ctx)
}

func (r *systemConfigRepository) get(ctx context.Context) (*models.SystemConfig, error) {
	var cfg models.SystemConfig
	if err := r.db.WithContext(ctx).First(&cfg, models.SystemConfigID).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}
