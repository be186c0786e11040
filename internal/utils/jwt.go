package utils

import (
	"errors"
	"strconv"
	"time"

	"paywallet/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "paywallet-api"

var (
	ErrMissingSecret = errors.New("jwt secret not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// GenerateToken signs an HS256 access token for the user. The token carries
// the user's token version so that bumping it revokes outstanding tokens.
func GenerateToken(secret string, ttl time.Duration, user *models.User) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
		},
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken parses and validates a JWT token string.
func ParseToken(secret, tokenStr string) (*models.UserClaims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
