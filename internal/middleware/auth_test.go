package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"paywallet/internal/models"
	"paywallet/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(id)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func newApp(users UserLookup, roles ...models.Role) *fiber.App {
	app := fiber.New()
	auth := NewAuthMiddleware("secret", users)
	handlers := []fiber.Handler{auth.Handler}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		claims, err := utils.GetUserClaims(c)
		if err != nil {
			return err
		}
		return c.SendString(string(claims.Role))
	})
	app.Get("/", handlers...)
	return app
}

func tokenFor(t *testing.T, u *models.User) string {
	t.Helper()
	token, err := utils.GenerateToken("secret", time.Hour, u)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	user := &models.User{Role: models.RoleUser, TokenVersion: 1}
	user.ID = 7

	tests := []struct {
		name       string
		header     string
		setupMock  func(*mockUsers)
		wantStatus int
	}{
		{
			name:       "missing header",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "not bearer",
			header:     "Basic abc",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			header:     "Bearer abc",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:   "valid token",
			header: "Bearer " + tokenFor(t, user),
			setupMock: func(m *mockUsers) {
				m.On("GetByID", uint(7)).Return(user, nil)
			},
			wantStatus: fiber.StatusOK,
		},
		{
			name:   "revoked token",
			header: "Bearer " + tokenFor(t, user),
			setupMock: func(m *mockUsers) {
				m.On("GetByID", uint(7)).Return(&models.User{Role: models.RoleUser, TokenVersion: 2}, nil)
			},
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:   "deleted user",
			header: "Bearer " + tokenFor(t, user),
			setupMock: func(m *mockUsers) {
				m.On("GetByID", uint(7)).Return(nil, errors.New("user not found"))
			},
			wantStatus: fiber.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUsers)
			if tt.setupMock != nil {
				tt.setupMock(users)
			}

			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := newApp(users).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			users.AssertExpectations(t)
		})
	}
}

func TestRequireRoles(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin, TokenVersion: 1}
	admin.ID = 1
	customer := &models.User{Role: models.RoleUser, TokenVersion: 1}
	customer.ID = 2

	users := new(mockUsers)
	users.On("GetByID", uint(1)).Return(admin, nil)
	users.On("GetByID", uint(2)).Return(customer, nil)
	app := newApp(users, models.RoleAdmin, models.RoleSuperAdmin)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, admin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, customer))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
