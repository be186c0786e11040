package handlers

import (
	"strconv"

	"paywallet/internal/services/transaction"
	"paywallet/internal/utils"
	"paywallet/internal/utils/response"
	"paywallet/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
)

// actorFrom builds the engine actor from the verified claims.
func actorFrom(c *fiber.Ctx) (transaction.Actor, error) {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return transaction.Actor{}, err
	}
	return transaction.Actor{UserID: claims.UserID, Role: claims.Role}, nil
}

// parseBody decodes and validates the JSON request body into dst. It writes
// the 400 response itself and reports whether the handler may continue.
func parseBody(c *fiber.Ctx, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(dst); err != nil {
		return false, response.FromError(c, err)
	}
	return true, nil
}

func paramUint(c *fiber.Ctx, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
