// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paywallet/internal/config"
	"paywallet/internal/logging"
	"paywallet/internal/repositories"
	"paywallet/internal/repositories/cache"
	"paywallet/internal/routes"
	"paywallet/internal/services/events"
	"paywallet/internal/services/systemconfig"
	"paywallet/internal/services/transaction"
	"paywallet/internal/services/user"
	"paywallet/internal/services/wallet"
	"paywallet/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// main initializes and starts the HTTP server.
// It performs the following setup:
// - Loads configuration
// - Initializes database and Redis connections
// - Sets up dependency injection
// - Configures routes
// - Serves until SIGINT/SIGTERM, then drains in-flight requests
func main() {
	config.LoadEnv()
	cfg := config.Load()

	log, syncLog := logging.Init(cfg.Server.Production)
	defer syncLog()

	if cfg.Server.Production && cfg.Auth.JWTSecret == "change-me" {
		log.Fatal("JWT_SECRET must be set in production")
	}

	db, err := repositories.InitDB(cfg.Database, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	if err := repositories.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get database instance", zap.Error(err))
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	redisClient, err := cache.Connect(ctx, cfg.Redis)
	cancel()
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	cacheService := cache.NewCacheService(redisClient, cfg.Redis.DefaultTTL)
	defer func() {
		if err := cacheService.Close(); err != nil {
			log.Warn("failed to close redis connection", zap.Error(err))
		}
	}()

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Kafka))
		log.Info("publishing ledger events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("failed to close event publisher", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(sqlDB, cfg.Database.Name),
	)

	store := repositories.NewStore(db)
	configService := systemconfig.NewService(store, cacheService, cfg.Redis.ConfigCacheTTL)
	if _, err := configService.GetConfig(context.Background()); err != nil {
		log.Fatal("failed to load system config", zap.Error(err))
	}

	deps := routes.Dependencies{
		Store:  store,
		Cache:  cacheService,
		Config: configService,
		Transactions: transaction.NewService(transaction.Dependencies{
			Store:     store,
			Config:    configService,
			Cache:     cacheService,
			Metrics:   transaction.NewPrometheusCollector(reg),
			Publisher: publisher,
		}),
		Wallets: wallet.NewService(store, cacheService, cfg.Redis.DefaultTTL),
		Users: user.NewService(store, configService, user.Options{
			JWTSecret:       cfg.Auth.JWTSecret,
			TokenTTL:        cfg.Auth.TokenTTL,
			StartingBalance: cfg.Wallet.StartingBalance,
		}),
		JWTSecret: cfg.Auth.JWTSecret,
		Gatherer:  reg,
	}

	app := fiber.New(fiber.Config{
		AppName: "paywallet",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return response.Error(c, fe.Code, fe.Message)
			}
			return response.FromError(c, err)
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PATCH",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	authLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	})
	app.Use("/api/register", authLimiter)
	app.Use("/api/login", authLimiter)

	routes.SetupRoutes(app, deps)

	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("port", cfg.Server.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
