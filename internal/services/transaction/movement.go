package transaction

import (
	"context"
	"sort"

	"paywallet/internal/models"
	"paywallet/internal/repositories"

	"github.com/shopspring/decimal"
)

// movement is one balance change inside an atomic unit.
type movement struct {
	walletID     uint
	amount       decimal.Decimal
	isDebit      bool
	insufficient error
}

func debit(walletID uint, amount decimal.Decimal, insufficient error) movement {
	return movement{walletID: walletID, amount: amount, isDebit: true, insufficient: insufficient}
}

func credit(walletID uint, amount decimal.Decimal) movement {
	return movement{walletID: walletID, amount: amount}
}

// applyMovements applies the changes in ascending wallet id order so that
// concurrent units acquire row locks in the same order. Debits are guarded
// by floor.
func applyMovements(ctx context.Context, tx *repositories.Store, floor decimal.Decimal, moves []movement) error {
	sort.SliceStable(moves, func(i, j int) bool { return moves[i].walletID < moves[j].walletID })

	for _, m := range moves {
		if !m.isDebit {
			if err := tx.Wallets().Credit(ctx, m.walletID, m.amount); err != nil {
				return err
			}
			continue
		}
		ok, err := tx.Wallets().DebitIfSufficient(ctx, m.walletID, m.amount, floor)
		if err != nil {
			return err
		}
		if !ok {
			return m.insufficient
		}
	}
	return nil
}

// floorOf is the lowest balance a debit may leave behind.
func floorOf(cfg *models.SystemConfig) decimal.Decimal {
	if cfg.MinBalance.IsPositive() {
		return cfg.MinBalance
	}
	return decimal.Zero
}
