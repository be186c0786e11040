package validation

import (
	"testing"

	apperrors "paywallet/internal/errors"

	"github.com/stretchr/testify/assert"
)

type signup struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Role     string `validate:"omitempty,oneof=USER AGENT"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(signup{Name: "Ada", Email: "ada@example.com", Password: "password1"}))

	err := Struct(signup{Email: "nope", Password: "short", Role: "ROOT"})
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "name: is required")
	assert.Contains(t, err.Error(), "email: must be a valid email address")
	assert.Contains(t, err.Error(), "password: must be at least 8 characters")
	assert.Contains(t, err.Error(), "role: must be one of USER AGENT")
}
