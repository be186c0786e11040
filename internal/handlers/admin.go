package handlers

import (
	"paywallet/internal/services/systemconfig"
	"paywallet/internal/services/user"
	"paywallet/internal/services/wallet"
	"paywallet/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type AdminHandler struct {
	configService systemconfig.Service
	walletService wallet.Service
	userService   user.Service
}

func NewAdminHandler(configService systemconfig.Service, walletService wallet.Service, userService user.Service) *AdminHandler {
	return &AdminHandler{
		configService: configService,
		walletService: walletService,
		userService:   userService,
	}
}

func (h *AdminHandler) GetSystemConfig(c *fiber.Ctx) error {
	cfg, err := h.configService.GetConfig(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "System config retrieved successfully", cfg)
}

func (h *AdminHandler) UpdateSystemConfig(c *fiber.Ctx) error {
	var input systemconfig.ConfigUpdate
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	cfg, err := h.configService.UpdateConfig(c.UserContext(), input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "System config updated successfully", cfg)
}

func (h *AdminHandler) BlockWallet(c *fiber.Ctx) error {
	userID, ok := paramUint(c, "userId")
	if !ok {
		return response.BadRequest(c, "Invalid user ID")
	}
	var input struct {
		Reason string `json:"reason"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	w, err := h.walletService.BlockWallet(c.UserContext(), userID, input.Reason)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Wallet blocked", w)
}

func (h *AdminHandler) UnblockWallet(c *fiber.Ctx) error {
	userID, ok := paramUint(c, "userId")
	if !ok {
		return response.BadRequest(c, "Invalid user ID")
	}

	w, err := h.walletService.UnblockWallet(c.UserContext(), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Wallet unblocked", w)
}

func (h *AdminHandler) ApproveAgent(c *fiber.Ctx) error {
	agentID, ok := paramUint(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid agent ID")
	}
	var input struct {
		CommissionRate *decimal.Decimal `json:"commissionRate"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	agent, err := h.userService.ApproveAgent(c.UserContext(), agentID, input.CommissionRate)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Agent approved", agent)
}

func (h *AdminHandler) SuspendAgent(c *fiber.Ctx) error {
	agentID, ok := paramUint(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid agent ID")
	}

	agent, err := h.userService.SuspendAgent(c.UserContext(), agentID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Agent suspended", agent)
}
