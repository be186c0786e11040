package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type WalletStatus string

const (
	WalletStatusActive  WalletStatus = "ACTIVE"
	WalletStatusBlocked WalletStatus = "BLOCKED"
)

var ErrNegativeBalance = errors.New("wallet balance cannot be negative")

type Wallet struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	UserID       uint            `gorm:"uniqueIndex;not null" json:"userId"`
	Balance      decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"balance"`
	Status       WalletStatus    `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	StatusReason string          `gorm:"default:''" json:"statusReason,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.Balance.IsNegative() {
		return ErrNegativeBalance
	}
	if w.Status == "" {
		w.Status = WalletStatusActive
	}
	return nil
}

func (w *Wallet) IsActive() bool {
	return w.Status == WalletStatusActive
}
