package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the verified identity carried by an access token.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	TokenVersion int    `json:"token_version"`
}

// HasRole checks the claims role against an allow list.
func (c *UserClaims) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}
