// Package errors provides the error taxonomy for the Numbers ledger.
// Service-layer code returns *AppError values so callers (HTTP handlers,
// the import CLI) can distinguish validation failures from storage faults
// without inspecting error strings.
package errors

import "net/http"

// AppError is a structured application error carrying a stable code, a
// human-readable message, an HTTP status code, and an optional wrapped
// internal error that is logged but never returned to clients.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrValidation = &AppError{Code: "VALIDATION_FAILED", Message: "Input failed validation", StatusCode: http.StatusBadRequest}
	ErrNotFound   = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrStorage    = &AppError{Code: "STORAGE_ERROR", Message: "A storage error occurred", StatusCode: http.StatusInternalServerError}
)

// Ledger errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrAccountNotFound     = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Payment method not found", StatusCode: http.StatusNotFound}
	// ErrUnrelatedAccount is a usage error: a signed amount was requested for
	// an account that is neither the debit nor the credit party.
	ErrUnrelatedAccount = &AppError{Code: "UNRELATED_ACCOUNT", Message: "Account is not a party to this transaction", StatusCode: http.StatusBadRequest}
)

// Credit-card-bill errors.
var (
	ErrBillNotFound = &AppError{Code: "BILL_NOT_FOUND", Message: "Credit card bill not found", StatusCode: http.StatusNotFound}
)

// Import errors.
var (
	// ErrImportSource covers failures to open or read the statement file
	// itself. Row-level malformation is not an error; malformed rows are
	// skipped by the pipeline.
	ErrImportSource = &AppError{Code: "IMPORT_SOURCE_ERROR", Message: "Statement file could not be read", StatusCode: http.StatusBadRequest}
)
