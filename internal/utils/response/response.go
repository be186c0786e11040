package response

import (
	apperrors "paywallet/internal/errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// FromError writes a DomainError with its mapped status and code. Anything
// else is treated as an internal failure and its detail stays in the logs.
func FromError(c *fiber.Ctx, err error) error {
	de, ok := apperrors.AsDomain(err)
	if !ok {
		de = apperrors.Internal(err)
	}
	status := apperrors.HTTPStatus(de.Code)
	message := de.Message
	if status == fiber.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		message = apperrors.ErrInternalFailure.Message
	}
	return c.Status(status).JSON(fiber.Map{
		"error": message,
		"code":  de.Code,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *fiber.Ctx) error {
	return Error(c, fiber.StatusForbidden, "Insufficient permissions")
}
