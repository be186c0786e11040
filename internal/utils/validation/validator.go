package validation

import (
	"errors"
	"fmt"
	"strings"

	apperrors "paywallet/internal/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Struct validates v against its `validate` tags. Failures are reported as a
// single INVALID_INPUT DomainError listing every offending field.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.Newf(apperrors.CodeInvalidInput, "invalid request: %v", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe).Error())
	}
	return apperrors.New(apperrors.CodeInvalidInput, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) ValidationError {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return ValidationError{Field: field, Message: "is required"}
	case "email":
		return ValidationError{Field: field, Message: "must be a valid email address"}
	case "min":
		return ValidationError{Field: field, Message: "must be at least " + fe.Param() + " characters"}
	case "max":
		return ValidationError{Field: field, Message: "must be at most " + fe.Param() + " characters"}
	case "oneof":
		return ValidationError{Field: field, Message: "must be one of " + fe.Param()}
	default:
		return ValidationError{Field: field, Message: "failed " + fe.Tag() + " validation"}
	}
}
