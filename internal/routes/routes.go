// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"paywallet/internal/handlers"
	"paywallet/internal/middleware"
	"paywallet/internal/models"
	"paywallet/internal/repositories"
	"paywallet/internal/services/systemconfig"
	"paywallet/internal/services/transaction"
	"paywallet/internal/services/user"
	"paywallet/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the wired services the routes dispatch to.
type Dependencies struct {
	Store        *repositories.Store
	Cache        handlers.Pinger
	Config       systemconfig.Service
	Transactions transaction.Service
	Wallets      wallet.Service
	Users        user.Service
	JWTSecret    string
	// Gatherer serves /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Users)
	transactionHandler := handlers.NewTransactionHandler(deps.Transactions)
	walletHandler := handlers.NewWalletHandler(deps.Wallets)
	adminHandler := handlers.NewAdminHandler(deps.Config, deps.Wallets, deps.Users)
	healthHandler := handlers.NewHealthHandler(deps.Store.DB(), deps.Cache)

	app.Get("/health", healthHandler.HealthCheck)
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	authMiddleware := middleware.NewAuthMiddleware(deps.JWTSecret, deps.Store.Users())

	setupTransactionRoutes(api.Group("/transactions", authMiddleware.Handler), transactionHandler)
	api.Get("/wallet", authMiddleware.Handler, walletHandler.GetWallet)
	setupAdminRoutes(api.Group("/admin", authMiddleware.Handler,
		middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin)), adminHandler)
}

func setupTransactionRoutes(router fiber.Router, h *handlers.TransactionHandler) {
	router.Post("/send", h.SendMoney)
	router.Post("/cash-in", h.CashIn)
	router.Post("/cash-out", h.CashOut)
	router.Get("/history", h.History)
	router.Get("/commissions", middleware.RequireRoles(models.RoleAgent), h.CommissionHistory)
}

func setupAdminRoutes(router fiber.Router, h *handlers.AdminHandler) {
	router.Get("/system-config", h.GetSystemConfig)
	router.Patch("/system-config", h.UpdateSystemConfig)

	router.Patch("/wallets/:userId/block", h.BlockWallet)
	router.Patch("/wallets/:userId/unblock", h.UnblockWallet)

	router.Patch("/agents/:id/approve", h.ApproveAgent)
	router.Patch("/agents/:id/suspend", h.SuspendAgent)
}
