package handlers

import (
	"paywallet/internal/models"
	"paywallet/internal/services/user"
	"paywallet/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	userService user.Service
}

func NewAuthHandler(userService user.Service) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

type registerRequest struct {
	Name     string      `json:"name" validate:"required,min=2,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8,max=72"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=USER AGENT"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a customer or agent account. Administrators are only
// created by the seed command.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input registerRequest
	if ok, err := parseBody(c, &input); !ok {
		return err
	}

	u, err := h.userService.Register(c.UserContext(), user.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "User registered successfully", u)
}

// Login handles user authentication and returns a JWT access token
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input loginRequest
	if ok, err := parseBody(c, &input); !ok {
		return err
	}

	u, token, err := h.userService.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return response.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token": token,
		"token_type":   "Bearer",
		"user": fiber.Map{
			"id":    u.ID,
			"email": u.Email,
			"role":  u.Role,
		},
	})
}
