package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv parses values such as "30s" or "24h".
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

type ServerConfig struct {
	Port            string
	Production      bool
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SQLitePath      string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host           string
	Port           string
	Password       string
	DB             int
	DefaultTTL     time.Duration
	ConfigCacheTTL time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether ledger events should be published.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type WalletConfig struct {
	StartingBalance decimal.Decimal
}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
	Wallet   WalletConfig
}

// Load assembles the application configuration from the environment.
func Load() *Config {
	starting, err := decimal.NewFromString(GetEnv("STARTING_BALANCE", "50"))
	if err != nil || starting.IsNegative() {
		log.Printf("invalid STARTING_BALANCE, using 50")
		starting = decimal.NewFromInt(50)
	}

	return &Config{
		Server: ServerConfig{
			Port:            GetEnv("PORT", "3000"),
			Production:      IsProduction(),
			ShutdownTimeout: GetDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Driver:          GetEnv("DB_DRIVER", "postgres"),
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "paywallet"),
			SQLitePath:      GetEnv("DB_SQLITE_PATH", "paywallet.db"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:           GetEnv("REDIS_HOST", "localhost"),
			Port:           GetEnv("REDIS_PORT", "6379"),
			Password:       GetEnv("REDIS_PASSWORD", ""),
			DB:             GetIntEnv("REDIS_DB", 0),
			DefaultTTL:     GetDurationEnv("CACHE_TTL", 24*time.Hour),
			ConfigCacheTTL: GetDurationEnv("CONFIG_CACHE_TTL", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(GetEnv("KAFKA_BROKERS", "")),
			Topic:   GetEnv("KAFKA_TOPIC", "wallet.transactions"),
		},
		Auth: AuthConfig{
			JWTSecret: GetEnv("JWT_SECRET", "change-me"),
			TokenTTL:  GetDurationEnv("JWT_TTL", 24*time.Hour),
		},
		Wallet: WalletConfig{
			StartingBalance: starting,
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
