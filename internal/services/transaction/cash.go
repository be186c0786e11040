package transaction

import (
	"context"
	"time"

	"paywallet/internal/models"
	"paywallet/internal/repositories"
	"paywallet/internal/services/commission"

	"github.com/shopspring/decimal"
)

// AddMoney credits a customer wallet. A USER tops up their own wallet from
// an external source and pays the fee from it; an approved AGENT pays the amount and fee from their
// own wallet and earns a commission.
func (s *service) AddMoney(ctx context.Context, actor Actor, req CashInRequest) (*Result, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(opCashIn, time.Since(start)) }()

	if err := validateAmount(req.Amount); err != nil {
		return nil, s.fail(opCashIn, actor, err)
	}

	cfg, err := s.config.GetConfig(ctx)
	if err != nil {
		return nil, s.fail(opCashIn, actor, err)
	}

	result := &Result{Message: "Cash-in successful"}
	var receiverID uint

	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		user, err := s.loadActor(ctx, tx, actor)
		if err != nil {
			return err
		}
		c, err := capabilityFor(user)
		if err != nil {
			return err
		}
		receiver, err := s.resolveCounterpart(ctx, tx, user, c, req.ReceiverID, cashInCounterpart)
		if err != nil {
			return err
		}
		receiverID = receiver.ID

		fee := models.Percent(req.Amount, cfg.CashInFee)
		entry := &models.Transaction{
			ReceiverID: models.UintPtr(receiver.ID),
			Amount:     req.Amount,
			Fee:        fee,
			Type:       models.TransactionTypeCashIn,
			Status:     models.TransactionStatusSuccessful,
		}

		var agentWallet *models.Wallet
		switch c {
		case capabilitySelfService:
			wallet, err := s.loadWallet(ctx, tx, user.ID, "your")
			if err != nil {
				return err
			}
			if err := s.limits.Consume(ctx, tx, user.ID, req.Amount, cfg); err != nil {
				return err
			}
			// the external source funds amount; the wallet owner pays the fee
			moves := []movement{credit(wallet.ID, req.Amount)}
			if fee.IsPositive() {
				moves = append(moves, debit(wallet.ID, fee, insufficientFunds(fee, fee)))
			}
			if err := applyMovements(ctx, tx, floorOf(cfg), moves); err != nil {
				return err
			}
			entry.WalletID = wallet.ID
			entry.Description = "Wallet top-up of " + req.Amount.String()

		case capabilityAgentMediated:
			agentWallet, err = s.loadWallet(ctx, tx, user.ID, "your")
			if err != nil {
				return err
			}
			receiverWallet, err := s.loadWallet(ctx, tx, receiver.ID, "receiver")
			if err != nil {
				return err
			}
			total := req.Amount.Add(fee)
			err = applyMovements(ctx, tx, floorOf(cfg), []movement{
				debit(agentWallet.ID, total, errAgentInsufficientFunds),
				credit(receiverWallet.ID, req.Amount),
			})
			if err != nil {
				return err
			}
			entry.WalletID = receiverWallet.ID
			entry.SenderID = models.UintPtr(user.ID)
			entry.Description = "Cash-in of " + req.Amount.String() + " by agent"
			if amt, ok := s.commission.Quote(user, req.Amount); ok {
				entry.Commission = decimal.NewNullDecimal(amt)
			}
		}

		if err := tx.Transactions().Create(ctx, entry); err != nil {
			return err
		}
		result.Transaction = entry

		if c == capabilityAgentMediated {
			result.Commission, err = s.commission.Disburse(ctx, tx, user, agentWallet, req.Amount, commission.OperationCashIn)
			if err != nil {
				return err
			}
		}

		result.Wallet, err = tx.Wallets().GetByUserID(ctx, receiver.ID)
		return err
	})
	if err != nil {
		return nil, s.fail(opCashIn, actor, err)
	}

	s.afterCommit(ctx, opCashIn, result, actor.UserID, receiverID)
	return result, nil
}

// WithdrawMoney debits amount plus the withdraw fee from a customer wallet.
// A USER withdraws from their own wallet; an approved AGENT cashes out a
// named user, receiving the gross amount and a commission.
func (s *service) WithdrawMoney(ctx context.Context, actor Actor, req CashOutRequest) (*Result, error) {
	op := withdrawOp(actor.Role)
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(op, time.Since(start)) }()

	if err := validateAmount(req.Amount); err != nil {
		return nil, s.fail(op, actor, err)
	}

	cfg, err := s.config.GetConfig(ctx)
	if err != nil {
		return nil, s.fail(op, actor, err)
	}

	result := &Result{}
	var fromID uint

	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		user, err := s.loadActor(ctx, tx, actor)
		if err != nil {
			return err
		}
		op = withdrawOp(user.Role)
		c, err := capabilityFor(user)
		if err != nil {
			return err
		}
		from, err := s.resolveCounterpart(ctx, tx, user, c, req.FromID, cashOutCounterpart)
		if err != nil {
			return err
		}
		fromID = from.ID

		fromWhose := "your"
		if c == capabilityAgentMediated {
			fromWhose = "customer"
		}
		fromWallet, err := s.loadWallet(ctx, tx, from.ID, fromWhose)
		if err != nil {
			return err
		}

		fee := models.Percent(req.Amount, cfg.WithdrawFee)
		total := req.Amount.Add(fee)
		moves := []movement{debit(fromWallet.ID, total, insufficientFunds(total, fee))}

		entry := &models.Transaction{
			WalletID:   fromWallet.ID,
			SenderID:   models.UintPtr(user.ID),
			ReceiverID: models.UintPtr(from.ID),
			Amount:     req.Amount,
			Fee:        fee,
			Status:     models.TransactionStatusSuccessful,
		}

		var agentWallet *models.Wallet
		switch c {
		case capabilitySelfService:
			entry.Type = models.TransactionTypeWithdraw
			entry.Description = "Withdrawal of " + req.Amount.String()
			result.Message = "Withdrawal successful"
		case capabilityAgentMediated:
			agentWallet, err = s.loadWallet(ctx, tx, user.ID, "your")
			if err != nil {
				return err
			}
			moves = append(moves, credit(agentWallet.ID, req.Amount))
			entry.Type = models.TransactionTypeCashOut
			entry.Description = "Cash-out of " + req.Amount.String() + " by agent"
			if amt, ok := s.commission.Quote(user, req.Amount); ok {
				entry.Commission = decimal.NewNullDecimal(amt)
			}
			result.Message = "Cash-out successful"
		}

		if err := applyMovements(ctx, tx, floorOf(cfg), moves); err != nil {
			return err
		}
		if err := tx.Transactions().Create(ctx, entry); err != nil {
			return err
		}
		result.Transaction = entry

		if c == capabilityAgentMediated {
			result.Commission, err = s.commission.Disburse(ctx, tx, user, agentWallet, req.Amount, commission.OperationCashOut)
			if err != nil {
				return err
			}
		}

		result.Wallet, err = tx.Wallets().GetByID(ctx, fromWallet.ID)
		return err
	})
	if err != nil {
		return nil, s.fail(op, actor, err)
	}

	s.afterCommit(ctx, op, result, actor.UserID, fromID)
	return result, nil
}

// withdrawOp labels a withdrawal by the role that performs it.
func withdrawOp(role models.Role) string {
	if role == models.RoleAgent {
		return opCashOut
	}
	return opWithdraw
}
