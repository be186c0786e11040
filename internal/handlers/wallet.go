package handlers

import (
	"paywallet/internal/services/wallet"
	"paywallet/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// GetWallet returns the caller's wallet
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	w, err := h.walletService.GetWallet(c.UserContext(), actor.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Wallet retrieved successfully", w)
}
