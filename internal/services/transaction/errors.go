package transaction

import (
	"errors"

	apperrors "paywallet/internal/errors"
	"paywallet/internal/repositories"

	"github.com/shopspring/decimal"
)

var (
	errAgentInsufficientFunds = &apperrors.DomainError{
		Code:    apperrors.CodeInsufficientFunds,
		Message: "Agent has insufficient funds",
	}
	errAdminForbidden = &apperrors.DomainError{
		Code:    apperrors.CodeForbiddenRole,
		Message: "administrators cannot move money between wallets",
	}
	errAgentNotApproved = &apperrors.DomainError{
		Code:    apperrors.CodeForbiddenRole,
		Message: "agent account is not approved",
	}
	errAgentOnly = &apperrors.DomainError{
		Code:    apperrors.CodeForbiddenRole,
		Message: "only agents have commission history",
	}
)

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	if !amount.Equal(amount.Truncate(2)) {
		return apperrors.New(apperrors.CodeInvalidAmount, "amount cannot have more than 2 decimal places")
	}
	return nil
}

func insufficientFunds(total, fee decimal.Decimal) error {
	return apperrors.Newf(apperrors.CodeInsufficientFunds,
		"insufficient funds: %s required including a fee of %s", total, fee)
}

func mapUserErr(err error, notFound *apperrors.DomainError) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return notFound
	}
	return err
}
