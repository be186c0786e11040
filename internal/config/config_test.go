package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("STARTING_BALANCE", "")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.True(t, cfg.Wallet.StartingBalance.Equal(decimal.NewFromInt(50)))
	assert.False(t, cfg.Kafka.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("CONFIG_CACHE_TTL", "90s")
	t.Setenv("STARTING_BALANCE", "12.5")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, 90*time.Second, cfg.Redis.ConfigCacheTTL)
	assert.Equal(t, "12.5", cfg.Wallet.StartingBalance.String())
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("JWT_TTL", "forever")
	t.Setenv("STARTING_BALANCE", "-3")

	cfg := Load()

	assert.Equal(t, 100, cfg.Database.MaxOpenConns)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "50", cfg.Wallet.StartingBalance.String())
}
