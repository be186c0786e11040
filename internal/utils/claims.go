package utils

import (
	"errors"

	"paywallet/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ClaimsKey is the fiber.Ctx locals key holding the verified claims.
const ClaimsKey = "claims"

var ErrMissingClaims = errors.New("claims not found in context")

// GetUserClaims extracts the user claims from the Fiber context.
// It returns an error if the claims are missing or of an invalid type.
func GetUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals(ClaimsKey).(*models.UserClaims)
	if !ok || claims == nil {
		return nil, ErrMissingClaims
	}
	return claims, nil
}
