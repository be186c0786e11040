package repositories

import (
	"context"
	"errors"
	"time"

	"paywallet/internal/models"
)

var ErrDuplicateReference = errors.New("transaction reference already exists")

// LedgerQuery filters the ledger. Zero values mean "no filter".
type LedgerQuery struct {
	// ParticipantID matches entries where the user is sender or receiver.
	ParticipantID *uint
	ReceiverID    *uint
	Type          models.TransactionType
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

// TransactionRepository is the append-only ledger store.
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	List(ctx context.Context, q LedgerQuery) ([]models.Transaction, int64, error)
}
