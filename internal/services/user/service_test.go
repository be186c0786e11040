package user

import (
	"context"
	"testing"
	"time"

	apperrors "paywallet/internal/errors"
	"paywallet/internal/models"
	"paywallet/internal/repositories"
	"paywallet/internal/services/systemconfig"
	"paywallet/internal/testutil"
	"paywallet/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T) (Service, *repositories.Store) {
	t.Helper()
	store := testutil.NewStore(t)
	c, _ := testutil.NewCache(t)
	cfg := systemconfig.NewService(store, c, time.Minute)
	return NewService(store, cfg, Options{
		JWTSecret:       "test-secret",
		TokenTTL:        time.Hour,
		StartingBalance: testutil.Dec("50"),
		BcryptCost:      bcrypt.MinCost,
	}), store
}

func TestRegister(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	t.Run("customer gets the starting balance", func(t *testing.T) {
		u, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: " Ada@Example.com ", Password: "password1"})
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", u.Email)
		assert.Equal(t, models.RoleUser, u.Role)
		assert.NotEqual(t, "password1", u.Password)
		require.NotNil(t, u.Wallet)
		assert.True(t, testutil.Balance(t, store, u.Wallet.ID).Equal(testutil.Dec("50")))
	})

	t.Run("agent starts pending", func(t *testing.T) {
		u, err := svc.Register(ctx, RegisterInput{Name: "Gus", Email: "gus@example.com", Password: "password1", Role: models.RoleAgent})
		require.NoError(t, err)
		assert.Equal(t, models.ApprovalPending, u.ApprovalStatus)
		assert.False(t, u.CommissionRate.Valid)
		assert.True(t, u.Wallet.Balance.Equal(testutil.Dec("50")))
	})

	t.Run("administrator starts empty", func(t *testing.T) {
		u, err := svc.Register(ctx, RegisterInput{Name: "Root", Email: "root@example.com", Password: "password1", Role: models.RoleSuperAdmin})
		require.NoError(t, err)
		assert.True(t, testutil.Balance(t, store, u.Wallet.ID).IsZero())
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: "ADA@example.com", Password: "password1"})
		assert.ErrorIs(t, err, apperrors.ErrDuplicateUser)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{Name: "X", Email: "x@example.com", Password: "password1", Role: "MERCHANT"})
		assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
	})
}

func TestLogin(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "password1"})
	require.NoError(t, err)

	u, token, err := svc.Login(ctx, "ada@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)

	claims, err := utils.ParseToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)

	_, _, err = svc.Login(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAgentApproval(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	agent, err := svc.Register(ctx, RegisterInput{Name: "Gus", Email: "gus@example.com", Password: "password1", Role: models.RoleAgent})
	require.NoError(t, err)

	t.Run("default rate comes from config", func(t *testing.T) {
		u, err := svc.ApproveAgent(ctx, agent.ID, nil)
		require.NoError(t, err)
		assert.True(t, u.IsApprovedAgent())
		require.True(t, u.CommissionRate.Valid)
		assert.True(t, u.CommissionRate.Decimal.Equal(decimal.NewFromInt(2)))
	})

	t.Run("explicit rate", func(t *testing.T) {
		rate := testutil.Dec("3.5")
		u, err := svc.ApproveAgent(ctx, agent.ID, &rate)
		require.NoError(t, err)
		assert.True(t, u.CommissionRate.Decimal.Equal(rate))
	})

	t.Run("rate out of range", func(t *testing.T) {
		rate := testutil.Dec("-1")
		_, err := svc.ApproveAgent(ctx, agent.ID, &rate)
		assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
	})

	t.Run("suspend clears the rate", func(t *testing.T) {
		u, err := svc.SuspendAgent(ctx, agent.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ApprovalSuspended, u.ApprovalStatus)
		assert.False(t, u.CommissionRate.Valid)
	})

	t.Run("customers cannot be approved", func(t *testing.T) {
		customer, _ := testutil.CreateUser(t, store, "c@example.com", models.RoleUser, "0")
		_, err := svc.ApproveAgent(ctx, customer.ID, nil)
		assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.SuspendAgent(ctx, 999)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
