package commission

import (
	"context"
	"testing"

	"paywallet/internal/models"
	"paywallet/internal/repositories"
	"paywallet/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	h := NewHandler()
	rate := func(s string) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.RequireFromString(s)) }

	tests := []struct {
		name   string
		agent  *models.User
		amount string
		want   string
		ok     bool
	}{
		{"approved agent", &models.User{Role: models.RoleAgent, CommissionRate: rate("2")}, "500", "10", true},
		{"fractional", &models.User{Role: models.RoleAgent, CommissionRate: rate("2")}, "50", "1", true},
		{"rounds to cents", &models.User{Role: models.RoleAgent, CommissionRate: rate("1.25")}, "10.5", "0.13", true},
		{"nil rate", &models.User{Role: models.RoleAgent}, "500", "0", false},
		{"negative rate", &models.User{Role: models.RoleAgent, CommissionRate: rate("-1")}, "500", "0", false},
		{"zero rate", &models.User{Role: models.RoleAgent, CommissionRate: rate("0")}, "500", "0", false},
		{"rounds to zero", &models.User{Role: models.RoleAgent, CommissionRate: rate("0.1")}, "1", "0", false},
		{"not an agent", &models.User{Role: models.RoleUser, CommissionRate: rate("2")}, "500", "0", false},
		{"nil agent", nil, "500", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := h.Quote(tt.agent, decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.ok, ok)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestDisburseCreditsAgentAndRecordsEntry(t *testing.T) {
	store := testutil.NewStore(t)
	agent, wallet := testutil.CreateApprovedAgent(t, store, "agent@example.com", "9500", "2")
	ctx := context.Background()

	var entry *models.Transaction
	err := store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		entry, err = NewHandler().Disburse(ctx, tx, agent, wallet, testutil.Dec("500"), OperationCashIn)
		return err
	})
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.Equal(t, "9510", testutil.Balance(t, store, wallet.ID).String())
	assert.Equal(t, models.TransactionTypeCommission, entry.Type)
	assert.Equal(t, "10", entry.Amount.String())
	require.NotNil(t, entry.ReceiverID)
	assert.Equal(t, agent.ID, *entry.ReceiverID)
	assert.Nil(t, entry.SenderID)
	assert.Equal(t, "Commission for cash-in of 500", entry.Description)
	assert.NotEmpty(t, entry.ReferenceID)
}

func TestDisburseSkipsSilently(t *testing.T) {
	store := testutil.NewStore(t)
	agent, wallet := testutil.CreateUser(t, store, "pending@example.com", models.RoleAgent, "100")
	ctx := context.Background()

	entry, err := NewHandler().Disburse(ctx, store, agent, wallet, testutil.Dec("500"), OperationCashOut)
	require.NoError(t, err)
	assert.Nil(t, entry)

	entry, err = NewHandler().Disburse(ctx, store, agent, nil, testutil.Dec("500"), OperationCashOut)
	require.NoError(t, err)
	assert.Nil(t, entry)

	assert.Equal(t, "100", testutil.Balance(t, store, wallet.ID).String())
	_, total, err := store.Transactions().List(ctx, repositories.LedgerQuery{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}
