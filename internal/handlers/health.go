package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Pinger is satisfied by the cache service.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	db    *gorm.DB
	cache Pinger
}

func NewHealthHandler(db *gorm.DB, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	database := "connected"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		database = "unavailable"
		status = fiber.StatusServiceUnavailable
	}
	redis := "connected"
	if err := h.cache.HealthCheck(ctx); err != nil {
		redis = "unavailable"
		status = fiber.StatusServiceUnavailable
	}

	overall := "ok"
	if status != fiber.StatusOK {
		overall = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"services": fiber.Map{
			"database": database,
			"redis":    redis,
		},
	})
}
