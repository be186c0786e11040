package repositories

import (
	"context"
	"errors"
	"fmt"

	"paywallet/internal/models"

	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateReference
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) List(ctx context.Context, q LedgerQuery) ([]models.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Transaction{})

	if q.ParticipantID != nil {
		query = query.Where("sender_id = ? OR receiver_id = ?", *q.ParticipantID, *q.ParticipantID)
	}
	if q.ReceiverID != nil {
		query = query.Where("receiver_id = ?", *q.ReceiverID)
	}
	if q.Type != "" {
		query = query.Where("type = ?", q.Type)
	}
	if q.From != nil && q.To != nil {
		query = query.Where("created_at BETWEEN ? AND ?", *q.From, *q.To)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var items []models.Transaction
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return items, total, nil
}
