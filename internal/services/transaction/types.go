package transaction

import (
	"paywallet/internal/models"

	"github.com/shopspring/decimal"
)

// Actor is the verified caller. The engine reloads the user and acts on the
// stored role, not on Role.
type Actor struct {
	UserID uint
	Role   models.Role
}

type SendMoneyRequest struct {
	// Receiver is an email address or a numeric user id.
	Receiver    string          `json:"receiver" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"max=255"`
}

type CashInRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	ReceiverID *uint           `json:"receiverId,omitempty"`
}

type CashOutRequest struct {
	Amount decimal.Decimal `json:"amount"`
	FromID *uint           `json:"fromId,omitempty"`
}

// Result is returned by every committed money movement.
type Result struct {
	Message     string              `json:"message"`
	Transaction *models.Transaction `json:"transaction"`
	Commission  *models.Transaction `json:"commission,omitempty"`
	Wallet      *models.Wallet      `json:"wallet"`
}

type HistoryFilter struct {
	// UserID narrows an administrator's query to one participant. It is
	// ignored for everyone else.
	UserID    *uint
	Type      models.TransactionType
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}

type HistoryPage struct {
	Items      []models.Transaction `json:"items"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	Total      int64                `json:"total"`
	TotalPages int64                `json:"totalPages"`
}
