package errors

import "net/http"

// HTTPStatus maps an error code to the status the HTTP layer responds with.
func HTTPStatus(code string) int {
	switch code {
	case CodeInvalidAmount, CodeSelfTransfer, CodeReceiverRequired,
		CodeFromIDRequired, CodeNoValidFields, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeInvalidCredentials:
		return http.StatusUnauthorized
	case CodeForbiddenRole, CodeWalletInactive:
		return http.StatusForbidden
	case CodeActorNotFound, CodeReceiverNotFound, CodeUserNotFound, CodeWalletNotFound:
		return http.StatusNotFound
	case CodeDuplicateUser:
		return http.StatusConflict
	case CodeInsufficientFunds, CodeDailyLimitExceeded, CodeMonthlyLimitExceeded:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
