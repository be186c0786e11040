package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionTypeSendMoney  TransactionType = "SEND_MONEY"
	TransactionTypeWithdraw   TransactionType = "WITHDRAW"
	TransactionTypeCashIn     TransactionType = "CASH_IN"
	TransactionTypeCashOut    TransactionType = "CASH_OUT"
	TransactionTypeCommission TransactionType = "COMMISSION"
)

// Valid reports whether t is a known ledger entry type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeSendMoney, TransactionTypeWithdraw, TransactionTypeCashIn,
		TransactionTypeCashOut, TransactionTypeCommission:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "PENDING"
	TransactionStatusSuccessful TransactionStatus = "SUCCESSFUL"
	TransactionStatusFailed     TransactionStatus = "FAILED"
	TransactionStatusReversed   TransactionStatus = "REVERSED"
)

var ErrInvalidLedgerEntry = errors.New("ledger entry amounts cannot be negative")

// Transaction is an append-only ledger entry. WalletID is the wallet whose
// balance the entry is anchored to.
type Transaction struct {
	ID          uint                `gorm:"primarykey" json:"id"`
	WalletID    uint                `gorm:"index;not null" json:"walletId"`
	SenderID    *uint               `gorm:"index" json:"senderId"`
	ReceiverID  *uint               `gorm:"index" json:"receiverId"`
	Amount      decimal.Decimal     `gorm:"type:numeric(20,4);not null" json:"amount"`
	Fee         decimal.Decimal     `gorm:"type:numeric(20,4);not null;default:0" json:"fee"`
	Commission  decimal.NullDecimal `gorm:"type:numeric(20,4)" json:"commission"`
	Type        TransactionType     `gorm:"type:varchar(20);index;not null" json:"type"`
	Status      TransactionStatus   `gorm:"type:varchar(20);not null;default:'SUCCESSFUL'" json:"status"`
	ReferenceID string              `gorm:"uniqueIndex;not null" json:"referenceId"`
	Description string              `json:"description"`
	CreatedAt   time.Time           `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.Amount.IsNegative() || t.Fee.IsNegative() {
		return ErrInvalidLedgerEntry
	}
	if t.ReferenceID == "" {
		t.ReferenceID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = TransactionStatusSuccessful
	}
	return nil
}

// UintPtr is a small helper for the optional sender/receiver columns.
func UintPtr(v uint) *uint {
	return &v
}
