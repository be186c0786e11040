// Package testutil wires real stores against in-memory backends for tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"paywallet/internal/models"
	"paywallet/internal/repositories"
	"paywallet/internal/repositories/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database. The pool is limited to a
// single connection so the database outlives idle periods and transactions
// serialize.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repositories.Migrate(db))
	return db
}

func NewStore(t testing.TB) *repositories.Store {
	t.Helper()
	return repositories.NewStore(NewDB(t))
}

func NewCache(t testing.TB) (*cache.CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewCacheService(client, time.Hour), mr
}

// CreateUser inserts a user together with a wallet holding balance.
func CreateUser(t testing.TB, store *repositories.Store, email string, role models.Role, balance string) (*models.User, *models.Wallet) {
	t.Helper()
	ctx := context.Background()

	user := &models.User{
		Name:     email,
		Email:    email,
		Password: "x",
		Role:     role,
	}
	if role == models.RoleAgent {
		user.ApprovalStatus = models.ApprovalPending
	}
	require.NoError(t, store.Users().Create(ctx, user))

	wallet := &models.Wallet{UserID: user.ID, Balance: decimal.RequireFromString(balance)}
	require.NoError(t, store.Wallets().Create(ctx, wallet))
	return user, wallet
}

// CreateApprovedAgent inserts an approved agent with the given commission rate.
func CreateApprovedAgent(t testing.TB, store *repositories.Store, email, balance, rate string) (*models.User, *models.Wallet) {
	t.Helper()
	user, wallet := CreateUser(t, store, email, models.RoleAgent, balance)
	r := decimal.NewNullDecimal(decimal.RequireFromString(rate))
	require.NoError(t, store.Users().UpdateAgentApproval(context.Background(), user.ID, models.ApprovalApproved, r))
	user.ApprovalStatus = models.ApprovalApproved
	user.CommissionRate = r
	return user, wallet
}

// Balance reloads a wallet balance from the store.
func Balance(t testing.TB, store *repositories.Store, walletID uint) decimal.Decimal {
	t.Helper()
	w, err := store.Wallets().GetByID(context.Background(), walletID)
	require.NoError(t, err)
	return w.Balance
}

func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
