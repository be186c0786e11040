// Package middleware provides HTTP middleware components for the application.
// It includes authentication and role checks for the fiber web framework.
package middleware

import (
	"context"
	"strings"

	"paywallet/internal/models"
	"paywallet/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserLookup is the part of the user store the middleware needs.
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware handles JWT token validation and user authentication.
// It extracts the JWT token from the Authorization header, validates it,
// and adds the user claims to the request context.
type AuthMiddleware struct {
	secret string
	users  UserLookup
}

func NewAuthMiddleware(secret string, users UserLookup) *AuthMiddleware {
	return &AuthMiddleware{
		secret: secret,
		users:  users,
	}
}

// Handler validates JWT tokens and adds claims to the request context.
// It checks for:
// - Presence of Authorization header with Bearer token
// - Valid JWT signature and expiry
// - Token version matches current user version
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
	}

	claims, err := utils.ParseToken(m.secret, strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		zap.L().Debug("token validation failed", zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	user, err := m.users.GetByID(c.UserContext(), claims.UserID)
	if err != nil {
		zap.L().Info("token user not found", zap.Uint("user_id", claims.UserID))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}
	if claims.TokenVersion != user.TokenVersion {
		zap.L().Info("token version mismatch",
			zap.Uint("user_id", claims.UserID),
			zap.Int("token_version", claims.TokenVersion),
			zap.Int("current_version", user.TokenVersion))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "session expired"})
	}

	c.Locals(utils.ClaimsKey, claims)
	return c.Next()
}

// RequireRoles rejects requests whose claims carry none of roles. It must run
// after Handler.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.GetUserClaims(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		if !claims.HasRole(roles...) {
			zap.L().Info("access denied",
				zap.Uint("user_id", claims.UserID),
				zap.String("role", string(claims.Role)),
				zap.String("path", c.Path()))
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions"})
		}
		return c.Next()
	}
}
