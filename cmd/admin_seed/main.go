package main

import (
	"context"
	"errors"

	"paywallet/internal/config"
	apperrors "paywallet/internal/errors"
	"paywallet/internal/logging"
	"paywallet/internal/models"
	"paywallet/internal/repositories"
	"paywallet/internal/repositories/cache"
	"paywallet/internal/services/systemconfig"
	"paywallet/internal/services/user"

	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	log, syncLog := logging.Init(cfg.Server.Production)
	defer syncLog()

	adminEmail := config.GetEnv("ADMIN_EMAIL", "")
	adminPassword := config.GetEnv("ADMIN_PASSWORD", "")
	adminName := config.GetEnv("ADMIN_NAME", "Administrator")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	db, err := repositories.InitDB(cfg.Database, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	if err := repositories.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn("failed to close database connection", zap.Error(err))
			}
		}
	}()

	ctx := context.Background()
	redisClient, err := cache.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	cacheService := cache.NewCacheService(redisClient, cfg.Redis.DefaultTTL)
	defer cacheService.Close()

	store := repositories.NewStore(db)
	users := user.NewService(store,
		systemconfig.NewService(store, cacheService, cfg.Redis.ConfigCacheTTL),
		user.Options{
			JWTSecret:       cfg.Auth.JWTSecret,
			TokenTTL:        cfg.Auth.TokenTTL,
			StartingBalance: cfg.Wallet.StartingBalance,
		})

	_, err = users.Register(ctx, user.RegisterInput{
		Name:     adminName,
		Email:    adminEmail,
		Password: adminPassword,
		Role:     models.RoleSuperAdmin,
	})
	switch {
	case errors.Is(err, apperrors.ErrDuplicateUser):
		log.Info("admin user already exists", zap.String("email", adminEmail))
	case err != nil:
		log.Fatal("failed to create admin user", zap.Error(err))
	default:
		log.Info("admin account created", zap.String("email", adminEmail))
	}

	seedPath := config.GetEnv("SEED_FILE", "")
	if seedPath == "" {
		return
	}
	seed, err := LoadSeedFile(seedPath)
	if err != nil {
		log.Fatal("failed to load seed file", zap.Error(err))
	}
	created, err := apply(ctx, users, seed)
	if err != nil {
		log.Fatal("seeding failed", zap.Int("created", created), zap.Error(err))
	}
	log.Info("seed applied", zap.String("file", seedPath), zap.Int("created", created))
}
