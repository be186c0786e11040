// Package commission pays agents for the cash-in and cash-out volume they
// facilitate.
package commission

import (
	"context"
	"fmt"

	"paywallet/internal/models"
	"paywallet/internal/repositories"

	"github.com/shopspring/decimal"
)

type Operation string

const (
	OperationCashIn  Operation = "cash-in"
	OperationCashOut Operation = "cash-out"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Quote returns the commission the agent earns on amount. ok is false when
// no commission applies.
func (h *Handler) Quote(agent *models.User, amount decimal.Decimal) (commission decimal.Decimal, ok bool) {
	if agent == nil || agent.Role != models.RoleAgent {
		return decimal.Zero, false
	}
	if !agent.CommissionRate.Valid || agent.CommissionRate.Decimal.IsNegative() {
		return decimal.Zero, false
	}
	commission = models.Percent(amount, agent.CommissionRate.Decimal)
	if !commission.IsPositive() {
		return decimal.Zero, false
	}
	return commission, true
}

// Disburse credits the agent wallet and appends the COMMISSION entry. It must
// run on the transactional store of the parent transfer. A nil entry with a
// nil error means the commission was skipped.
func (h *Handler) Disburse(ctx context.Context, store *repositories.Store, agent *models.User, agentWallet *models.Wallet, amount decimal.Decimal, op Operation) (*models.Transaction, error) {
	if agentWallet == nil {
		return nil, nil
	}
	commission, ok := h.Quote(agent, amount)
	if !ok {
		return nil, nil
	}

	if err := store.Wallets().Credit(ctx, agentWallet.ID, commission); err != nil {
		return nil, err
	}

	entry := &models.Transaction{
		WalletID:    agentWallet.ID,
		ReceiverID:  models.UintPtr(agent.ID),
		Amount:      commission,
		Type:        models.TransactionTypeCommission,
		Status:      models.TransactionStatusSuccessful,
		Description: fmt.Sprintf("Commission for %s of %s", op, amount),
	}
	if err := store.Transactions().Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
