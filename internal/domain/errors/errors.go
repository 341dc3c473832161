package errors

import (
	"fmt"
)

// Error codes for the application error taxonomy.
const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	CodeSameAccountTransfer = "SAME_ACCOUNT_TRANSFER"
	CodeConflict            = "CONFLICT"
	CodeAuthentication      = "AUTHENTICATION_ERROR"
	CodePersistenceFailure  = "PERSISTENCE_FAILURE"
)

// AppError is a custom error type for application errors
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error returns a string representation of the error
func (e AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is implements the errors.Is interface
func (e AppError) Is(target error) bool {
	if target, ok := target.(AppError); ok {
		return target.Code == e.Code
	}
	return false
}

// Unwrap returns the underlying error
func (e AppError) Unwrap() error {
	return e.Err
}

// Matcher values for use with errors.Is.
var (
	ErrInvalidInput        = AppError{Code: CodeInvalidInput}
	ErrNotFound            = AppError{Code: CodeNotFound}
	ErrInvalidAmount       = AppError{Code: CodeInvalidAmount}
	ErrInsufficientFunds   = AppError{Code: CodeInsufficientFunds}
	ErrSameAccountTransfer = AppError{Code: CodeSameAccountTransfer}
	ErrConflict            = AppError{Code: CodeConflict}
	ErrAuthentication      = AppError{Code: CodeAuthentication}
	ErrPersistenceFailure  = AppError{Code: CodePersistenceFailure}
)

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(message string) AppError {
	return AppError{
		Code:    CodeInvalidInput,
		Message: message,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) AppError {
	return AppError{
		Code:    CodeNotFound,
		Message: message,
	}
}

// NewInvalidAmountError creates a new invalid amount error
func NewInvalidAmountError(message string) AppError {
	return AppError{
		Code:    CodeInvalidAmount,
		Message: message,
	}
}

// NewInsufficientFundsError creates a new insufficient funds error
func NewInsufficientFundsError(message string) AppError {
	return AppError{
		Code:    CodeInsufficientFunds,
		Message: message,
	}
}

// NewSameAccountTransferError creates a new same account transfer error
func NewSameAccountTransferError() AppError {
	return AppError{
		Code:    CodeSameAccountTransfer,
		Message: "cannot transfer to the same account",
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) AppError {
	return AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

// NewAuthenticationError creates a new authentication error
func NewAuthenticationError(message string) AppError {
	return AppError{
		Code:    CodeAuthentication,
		Message: message,
	}
}

// NewPersistenceError creates a new persistence error.
// It signals that an in-memory mutation succeeded but could not be written
// to disk, so durability is uncertain.
func NewPersistenceError(message string, err error) AppError {
	return AppError{
		Code:    CodePersistenceFailure,
		Message: message,
		Err:     err,
	}
}
