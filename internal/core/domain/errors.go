package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("phone number already registered")
)

// Wallet errors
var (
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

// Loan errors
var (
	ErrLoanNotFound          = errors.New("loan not found")
	ErrLoanNotPayable        = errors.New("loan is not open for payment")
	ErrOverpaymentRejected   = errors.New("payment exceeds remaining amount")
	ErrLoanNotExtendable     = errors.New("14-day loans cannot be extended")
	ErrExtensionLimitReached = errors.New("loan extension limit reached")
	ErrInvalidTerm           = errors.New("term must be 14, 30 or 90 days")
	ErrAmountOutOfRange      = errors.New("loan amount outside allowed range")
	ErrLoanLimitExceeded     = errors.New("amount exceeds available loan limit")
)

// Profile errors
var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileNotVerified = errors.New("profile is not verified")
	ErrAlreadyVerified    = errors.New("profile is already verified")
)

// Withdrawal and transaction errors
var (
	ErrWithdrawalNotFound  = errors.New("withdrawal not found")
	ErrWithdrawalNotOpen   = errors.New("only pending withdrawals can be cancelled")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTransactionSettled  = errors.New("transaction already settled")
)

// ValidationError is a client-side input rejection. It blocks the
// request before anything is sent to the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validationf builds a ValidationError for a field.
func Validationf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
