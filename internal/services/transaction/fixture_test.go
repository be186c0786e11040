package transaction

import (
	"context"
	"sync"
	"testing"
	"time"

	"paywallet/internal/models"
	"paywallet/internal/repositories"
	"paywallet/internal/services/systemconfig"
	"paywallet/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu      sync.Mutex
	entries []*models.Transaction
}

func (p *recordingPublisher) PublishTransactions(_ context.Context, entries ...*models.Transaction) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range entries {
		if e != nil {
			p.entries = append(p.entries, e)
		}
	}
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

type fixture struct {
	store     *repositories.Store
	config    systemconfig.Service
	svc       Service
	redis     *miniredis.Miniredis
	publisher *recordingPublisher
	metrics   *PrometheusCollector
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewStore(t)
	c, mr := testutil.NewCache(t)
	cfg := systemconfig.NewService(store, c, time.Minute)
	pub := &recordingPublisher{}
	metrics := NewPrometheusCollector(prometheus.NewRegistry())

	_, err := cfg.GetConfig(context.Background())
	require.NoError(t, err)

	return &fixture{
		store:  store,
		config: cfg,
		svc: NewService(Dependencies{
			Store:     store,
			Config:    cfg,
			Cache:     c,
			Metrics:   metrics,
			Publisher: pub,
		}),
		redis:     mr,
		publisher: pub,
		metrics:   metrics,
	}
}

func (f *fixture) user(t *testing.T, email, balance string) (*models.User, *models.Wallet) {
	return testutil.CreateUser(t, f.store, email, models.RoleUser, balance)
}

func (f *fixture) agent(t *testing.T, email, balance, rate string) (*models.User, *models.Wallet) {
	return testutil.CreateApprovedAgent(t, f.store, email, balance, rate)
}

func (f *fixture) assertBalance(t *testing.T, walletID uint, want string) {
	t.Helper()
	got := testutil.Balance(t, f.store, walletID)
	assert.True(t, got.Equal(testutil.Dec(want)), "wallet %d balance: got %s want %s", walletID, got, want)
}

func (f *fixture) ledgerCount(t *testing.T) int64 {
	t.Helper()
	_, total, err := f.store.Transactions().List(context.Background(), repositories.LedgerQuery{Limit: 1})
	require.NoError(t, err)
	return total
}

func (f *fixture) reloadUser(t *testing.T, id uint) *models.User {
	t.Helper()
	u, err := f.store.Users().GetByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func actorOf(u *models.User) Actor {
	return Actor{UserID: u.ID, Role: u.Role}
}

func ptr(v uint) *uint { return &v }
