package errors

const (
	CodeInvalidAmount        = "INVALID_AMOUNT"
	CodeActorNotFound        = "ACTOR_NOT_FOUND"
	CodeReceiverNotFound     = "RECEIVER_NOT_FOUND"
	CodeUserNotFound         = "USER_NOT_FOUND"
	CodeSelfTransfer         = "SELF_TRANSFER"
	CodeWalletNotFound       = "WALLET_NOT_FOUND"
	CodeWalletInactive       = "WALLET_INACTIVE"
	CodeInsufficientFunds    = "INSUFFICIENT_FUNDS"
	CodeForbiddenRole        = "FORBIDDEN_ROLE"
	CodeReceiverRequired     = "RECEIVER_REQUIRED"
	CodeFromIDRequired       = "FROM_ID_REQUIRED"
	CodeDailyLimitExceeded   = "DAILY_LIMIT_EXCEEDED"
	CodeMonthlyLimitExceeded = "MONTHLY_LIMIT_EXCEEDED"
	CodeNoValidFields        = "NO_VALID_FIELDS"
	CodeInternalFailure      = "INTERNAL_FAILURE"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeDuplicateUser        = "DUPLICATE_USER"
	CodeInvalidInput         = "INVALID_INPUT"
)

var (
	ErrInvalidAmount = &DomainError{
		Code:    CodeInvalidAmount,
		Message: "amount must be greater than zero",
	}
	ErrActorNotFound = &DomainError{
		Code:    CodeActorNotFound,
		Message: "user not found",
	}
	ErrReceiverNotFound = &DomainError{
		Code:    CodeReceiverNotFound,
		Message: "receiver not found",
	}
	ErrUserNotFound = &DomainError{
		Code:    CodeUserNotFound,
		Message: "user not found",
	}
	ErrSelfTransfer = &DomainError{
		Code:    CodeSelfTransfer,
		Message: "cannot transfer money to yourself",
	}
	ErrWalletNotFound = &DomainError{
		Code:    CodeWalletNotFound,
		Message: "wallet not found",
	}
	ErrWalletInactive = &DomainError{
		Code:    CodeWalletInactive,
		Message: "wallet is not active",
	}
	ErrInsufficientFunds = &DomainError{
		Code:    CodeInsufficientFunds,
		Message: "insufficient funds",
	}
	ErrForbiddenRole = &DomainError{
		Code:    CodeForbiddenRole,
		Message: "role is not permitted to perform this operation",
	}
	ErrReceiverRequired = &DomainError{
		Code:    CodeReceiverRequired,
		Message: "receiver id is required for agent cash-in",
	}
	ErrFromIDRequired = &DomainError{
		Code:    CodeFromIDRequired,
		Message: "from id is required for agent cash-out",
	}
	ErrDailyLimitExceeded = &DomainError{
		Code:    CodeDailyLimitExceeded,
		Message: "daily limit exceeded",
	}
	ErrMonthlyLimitExceeded = &DomainError{
		Code:    CodeMonthlyLimitExceeded,
		Message: "monthly limit exceeded",
	}
	ErrNoValidFields = &DomainError{
		Code:    CodeNoValidFields,
		Message: "no valid fields to update",
	}
	ErrInternalFailure = &DomainError{
		Code:    CodeInternalFailure,
		Message: "internal failure",
	}
	ErrInvalidCredentials = &DomainError{
		Code:    CodeInvalidCredentials,
		Message: "invalid email or password",
	}
	ErrDuplicateUser = &DomainError{
		Code:    CodeDuplicateUser,
		Message: "a user with this email already exists",
	}
)
