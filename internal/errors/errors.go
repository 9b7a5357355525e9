// Package errors provides custom error types for the Hearth API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
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

// Authentication errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Not authenticated", StatusCode: http.StatusUnauthorized}
	ErrInvalidPIN   = &AppError{Code: "INVALID_PIN", Message: "Incorrect PIN", StatusCode: http.StatusUnauthorized}
	ErrRateLimited  = &AppError{Code: "RATE_LIMITED", Message: "Too many failed attempts", StatusCode: http.StatusTooManyRequests}
	ErrSetupDone    = &AppError{Code: "SETUP_COMPLETE", Message: "A household has already been set up", StatusCode: http.StatusBadRequest}
	ErrNoHousehold  = &AppError{Code: "NO_HOUSEHOLD", Message: "No household has been set up yet", StatusCode: http.StatusNotFound}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Category errors.
var (
	ErrCategoryNotFound  = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrCategoryInUse     = &AppError{Code: "CATEGORY_IN_USE", Message: "Category is used by existing transactions", StatusCode: http.StatusConflict}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "A category with this name already exists", StatusCode: http.StatusConflict}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
)

// Budget errors.
var (
	ErrBudgetNotFound  = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrDuplicateBudget = &AppError{Code: "DUPLICATE_BUDGET", Message: "A budget for this category and month already exists", StatusCode: http.StatusConflict}
)

// Import errors.
var (
	ErrNoCategories       = &AppError{Code: "NO_CATEGORIES", Message: "Create at least one category before importing", StatusCode: http.StatusConflict}
	ErrImportBadFile      = &AppError{Code: "IMPORT_BAD_EXTENSION", Message: "Only .csv files can be imported", StatusCode: http.StatusBadRequest}
	ErrImportTooLarge     = &AppError{Code: "IMPORT_FILE_TOO_LARGE", Message: "Import files must be 5 MB or smaller", StatusCode: http.StatusBadRequest}
	ErrImportEmpty        = &AppError{Code: "IMPORT_EMPTY", Message: "The file contains no transactions to import", StatusCode: http.StatusBadRequest}
	ErrImportBadHeader    = &AppError{Code: "IMPORT_BAD_HEADER", Message: "The file must have Date, Amount and Description columns", StatusCode: http.StatusBadRequest}
	ErrImportCommitFailed = &AppError{Code: "IMPORT_COMMIT_FAILED", Message: "The import could not be saved", StatusCode: http.StatusInternalServerError}
)
