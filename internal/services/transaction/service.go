// Package transaction is the money-movement engine: send, cash-in and
// cash-out as single atomic units, plus ledger history reads.
package transaction

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	apperrors "paywallet/internal/errors"
	"paywallet/internal/models"
	"paywallet/internal/repositories"
	"paywallet/internal/repositories/cache"
	"paywallet/internal/services/commission"
	"paywallet/internal/services/events"
	"paywallet/internal/services/limits"
	"paywallet/internal/services/systemconfig"

	"go.uber.org/zap"
)

type Service interface {
	SendMoney(ctx context.Context, actor Actor, req SendMoneyRequest) (*Result, error)
	AddMoney(ctx context.Context, actor Actor, req CashInRequest) (*Result, error)
	WithdrawMoney(ctx context.Context, actor Actor, req CashOutRequest) (*Result, error)
	ViewHistory(ctx context.Context, actor Actor, filter HistoryFilter) (*HistoryPage, error)
	GetCommissionHistory(ctx context.Context, actor Actor, filter HistoryFilter) (*HistoryPage, error)
}

type Dependencies struct {
	Store      *repositories.Store
	Config     systemconfig.Service
	Cache      cache.Cache
	Limits     *limits.Tracker
	Commission *commission.Handler
	Metrics    MetricsCollector
	Publisher  events.Publisher
}

type service struct {
	store      *repositories.Store
	config     systemconfig.Service
	cache      cache.Cache
	limits     *limits.Tracker
	commission *commission.Handler
	metrics    MetricsCollector
	publisher  events.Publisher
}

// NewService creates a new transaction service
func NewService(deps Dependencies) Service {
	if deps.Store == nil {
		panic("store is required")
	}
	if deps.Config == nil {
		panic("config service is required")
	}
	if deps.Cache == nil {
		panic("cache is required")
	}
	if deps.Limits == nil {
		deps.Limits = limits.NewTracker(nil)
	}
	if deps.Commission == nil {
		deps.Commission = commission.NewHandler()
	}
	if deps.Metrics == nil {
		deps.Metrics = NoopMetricsCollector{}
	}
	if deps.Publisher == nil {
		deps.Publisher = events.NoopPublisher{}
	}

	return &service{
		store:      deps.Store,
		config:     deps.Config,
		cache:      deps.Cache,
		limits:     deps.Limits,
		commission: deps.Commission,
		metrics:    deps.Metrics,
		publisher:  deps.Publisher,
	}
}

// SendMoney moves amount from the actor to the receiver and charges the flat
// send fee to the actor.
func (s *service) SendMoney(ctx context.Context, actor Actor, req SendMoneyRequest) (*Result, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(opSendMoney, time.Since(start)) }()

	if err := validateAmount(req.Amount); err != nil {
		return nil, s.fail(opSendMoney, actor, err)
	}

	cfg, err := s.config.GetConfig(ctx)
	if err != nil {
		return nil, s.fail(opSendMoney, actor, err)
	}

	result := &Result{Message: "Money sent successfully"}
	var receiverID uint

	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		sender, err := s.loadActor(ctx, tx, actor)
		if err != nil {
			return err
		}
		if sender.Role.IsAdmin() {
			return errAdminForbidden
		}
		if sender.Role != models.RoleUser && sender.Role != models.RoleAgent {
			return apperrors.ErrForbiddenRole
		}

		receiver, err := s.resolveReceiver(ctx, tx, req.Receiver)
		if err != nil {
			return err
		}
		if receiver.ID == sender.ID {
			return apperrors.ErrSelfTransfer
		}
		receiverID = receiver.ID

		senderWallet, err := s.loadWallet(ctx, tx, sender.ID, "your")
		if err != nil {
			return err
		}
		receiverWallet, err := s.loadWallet(ctx, tx, receiver.ID, "receiver")
		if err != nil {
			return err
		}

		if err := s.limits.Consume(ctx, tx, sender.ID, req.Amount, cfg); err != nil {
			return err
		}

		fee := models.RoundMoney(cfg.SendMoneyFee)
		total := req.Amount.Add(fee)

		err = applyMovements(ctx, tx, floorOf(cfg), []movement{
			debit(senderWallet.ID, total, insufficientFunds(total, fee)),
			credit(receiverWallet.ID, req.Amount),
		})
		if err != nil {
			return err
		}

		entry := &models.Transaction{
			WalletID:    senderWallet.ID,
			SenderID:    models.UintPtr(sender.ID),
			ReceiverID:  models.UintPtr(receiver.ID),
			Amount:      req.Amount,
			Fee:         fee,
			Type:        models.TransactionTypeSendMoney,
			Status:      models.TransactionStatusSuccessful,
			Description: strings.TrimSpace(req.Description),
		}
		if err := tx.Transactions().Create(ctx, entry); err != nil {
			return err
		}
		result.Transaction = entry

		result.Wallet, err = tx.Wallets().GetByID(ctx, senderWallet.ID)
		return err
	})
	if err != nil {
		return nil, s.fail(opSendMoney, actor, err)
	}

	s.afterCommit(ctx, opSendMoney, result, actor.UserID, receiverID)
	return result, nil
}

func (s *service) loadActor(ctx context.Context, tx *repositories.Store, actor Actor) (*models.User, error) {
	user, err := tx.Users().GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, mapUserErr(err, apperrors.ErrActorNotFound)
	}
	return user, nil
}

// resolveReceiver accepts either a numeric user id or an email address.
func (s *service) resolveReceiver(ctx context.Context, tx *repositories.Store, ident string) (*models.User, error) {
	ident = strings.TrimSpace(ident)
	if ident == "" {
		return nil, apperrors.ErrReceiverNotFound
	}

	var (
		user *models.User
		err  error
	)
	if id, convErr := strconv.ParseUint(ident, 10, 64); convErr == nil {
		user, err = tx.Users().GetByID(ctx, uint(id))
	} else {
		user, err = tx.Users().GetByEmail(ctx, ident)
	}
	if err != nil {
		return nil, mapUserErr(err, apperrors.ErrReceiverNotFound)
	}
	return user, nil
}

// loadWallet fetches the user's wallet and requires it to be active. whose
// names the wallet in error messages.
func (s *service) loadWallet(ctx context.Context, tx *repositories.Store, userID uint, whose string) (*models.Wallet, error) {
	wallet, err := tx.Wallets().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, apperrors.Newf(apperrors.CodeWalletNotFound, "%s wallet was not found", whose)
		}
		return nil, err
	}
	if !wallet.IsActive() {
		return nil, apperrors.Newf(apperrors.CodeWalletInactive, "%s wallet is not active", whose)
	}
	return wallet, nil
}

// fail normalizes an error leaving the engine. Domain errors pass through;
// anything else is logged and replaced by a generic internal failure.
func (s *service) fail(op string, actor Actor, err error) error {
	if de, ok := apperrors.AsDomain(err); ok && de.Code != apperrors.CodeInternalFailure {
		s.metrics.RecordError(op, de.Code)
		zap.L().Info("operation rejected",
			zap.String("operation", op),
			zap.Uint("user_id", actor.UserID),
			zap.String("code", de.Code),
			zap.String("reason", de.Message))
		return de
	}

	s.metrics.RecordError(op, apperrors.CodeInternalFailure)
	zap.L().Error("operation failed",
		zap.String("operation", op),
		zap.Uint("user_id", actor.UserID),
		zap.Error(err))
	if de, ok := apperrors.AsDomain(err); ok {
		return de
	}
	return apperrors.Internal(err)
}

// afterCommit runs the best-effort side effects of a committed operation.
func (s *service) afterCommit(ctx context.Context, op string, result *Result, userIDs ...uint) {
	if err := s.cache.InvalidateWallet(ctx, userIDs...); err != nil {
		zap.L().Warn("wallet cache invalidation failed", zap.String("operation", op), zap.Error(err))
	}

	s.metrics.RecordTransaction(op, result.Transaction.Amount)

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.publisher.PublishTransactions(pubCtx, result.Transaction, result.Commission); err != nil {
		zap.L().Warn("failed to publish transaction events",
			zap.String("operation", op),
			zap.String("reference_id", result.Transaction.ReferenceID),
			zap.Error(err))
	}

	zap.L().Info("operation committed",
		zap.String("operation", op),
		zap.String("reference_id", result.Transaction.ReferenceID),
		zap.String("amount", result.Transaction.Amount.String()),
		zap.String("fee", result.Transaction.Fee.String()))
}
