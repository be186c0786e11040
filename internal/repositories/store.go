package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the repositories that share one database handle. A Store
// handed out by ExecuteInTransaction is bound to the open transaction.
type Store struct {
	db           *gorm.DB
	users        UserRepository
	wallets      WalletRepository
	transactions TransactionRepository
	systemConfig SystemConfigRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:           db,
		users:        NewUserRepository(db),
		wallets:      NewWalletRepository(db),
		transactions: NewTransactionRepository(db),
		systemConfig: NewSystemConfigRepository(db),
	}
}

func (s *Store) DB() *gorm.DB                         { return s.db }
func (s *Store) Users() UserRepository                { return s.users }
func (s *Store) Wallets() WalletRepository            { return s.wallets }
func (s *Store) Transactions() TransactionRepository  { return s.transactions }
func (s *Store) SystemConfig() SystemConfigRepository { return s.systemConfig }

// ExecuteInTransaction runs fn in one database transaction. The transaction
// commits when fn returns nil and rolls back on an error or a panic.
func (s *Store) ExecuteInTransaction(ctx context.Context, fn func(*Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
