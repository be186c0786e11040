// Package limits enforces per-user daily and monthly spend ceilings.
package limits

import (
	"context"
	"errors"
	"time"

	apperrors "paywallet/internal/errors"
	"paywallet/internal/models"
	"paywallet/internal/platform/clock"
	"paywallet/internal/repositories"

	"github.com/shopspring/decimal"
)

type Tracker struct {
	clock clock.Clock
}

func NewTracker(c clock.Clock) *Tracker {
	if c == nil {
		c = clock.RealClock{}
	}
	return &Tracker{clock: c}
}

// Consume adds amount to the user's counters after rolling over stale
// periods. It must run on a transactional store: the user row is locked and
// the counters are written in the same unit as the transfer they gate.
func (t *Tracker) Consume(ctx context.Context, store *repositories.Store, userID uint, amount decimal.Decimal, cfg *models.SystemConfig) error {
	user, err := store.Users().GetByIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return err
	}

	now := t.clock.Now()
	rollover(user, now)

	daily := user.DailyTransactionTotal.Add(amount)
	if daily.GreaterThan(cfg.DailyLimit) {
		return apperrors.Newf(apperrors.CodeDailyLimitExceeded,
			"daily limit of %s exceeded: current total %s, attempted %s",
			cfg.DailyLimit, user.DailyTransactionTotal, amount)
	}

	monthly := user.MonthlyTransactionTotal.Add(amount)
	if monthly.GreaterThan(cfg.MonthlyLimit) {
		return apperrors.Newf(apperrors.CodeMonthlyLimitExceeded,
			"monthly limit of %s exceeded: current total %s, attempted %s",
			cfg.MonthlyLimit, user.MonthlyTransactionTotal, amount)
	}

	user.DailyTransactionTotal = daily
	user.MonthlyTransactionTotal = monthly
	return store.Users().UpdateLimitCounters(ctx, user)
}

func rollover(user *models.User, now time.Time) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if user.LastDailyReset == nil || user.LastDailyReset.Before(dayStart) {
		user.DailyTransactionTotal = decimal.Zero
		stamp := now
		user.LastDailyReset = &stamp
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if user.LastMonthlyReset == nil || user.LastMonthlyReset.Before(monthStart) {
		user.MonthlyTransactionTotal = decimal.Zero
		stamp := now
		user.LastMonthlyReset = &stamp
	}
}
