package utils

import (
	"testing"
	"time"

	"paywallet/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	user := &models.User{Email: "a@example.com", Role: models.RoleAgent, TokenVersion: 3}
	user.ID = 42

	token, err := GenerateToken("secret", time.Hour, user)
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, models.RoleAgent, claims.Role)
	assert.Equal(t, 3, claims.TokenVersion)
}

func TestParseTokenRejects(t *testing.T) {
	user := &models.User{Email: "a@example.com", Role: models.RoleUser}
	user.ID = 1

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateToken("secret", time.Hour, user)
		require.NoError(t, err)
		_, err = ParseToken("other", token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := GenerateToken("secret", -time.Minute, user)
		require.NoError(t, err)
		_, err = ParseToken("secret", token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("foreign signing method", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, models.UserClaims{UserID: 1}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = ParseToken("secret", token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := GenerateToken("", time.Hour, user)
		assert.ErrorIs(t, err, ErrMissingSecret)
		_, err = ParseToken("", "x")
		assert.ErrorIs(t, err, ErrMissingSecret)
	})
}
