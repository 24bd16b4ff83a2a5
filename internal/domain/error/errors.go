package error

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeUnauthenticated  = 4010
	CodeForbidden        = 4030
	CodeNotFound         = 4040
	CodeConflict         = 4090
	CodeInvalidState     = 4220
	CodeInvalidRequest   = 4000
	CodeRateLimited      = 4290

	// 5xxx - Server errors
	CodeInternalServer = 5000
	CodeProviderError  = 5020
)

// Base error types
var (
	// ErrUnauthenticated is returned when the caller credential is missing or invalid
	ErrUnauthenticated = errors.New("missing or invalid credentials")

	// ErrForbidden is returned when an authenticated caller is not entitled to the operation
	ErrForbidden = errors.New("operation not permitted")

	// ErrAuctionNotFound is returned when the referenced auction doesn't exist
	ErrAuctionNotFound = errors.New("auction not found")

	// ErrUserNotFound is returned when the referenced user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound is returned when the referenced transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAccountNotFound is returned when no connect account exists for the user
	ErrAccountNotFound = errors.New("connect account not found")

	// ErrInvalidState is returned when the operation is not legal for the entity's current lifecycle state
	ErrInvalidState = errors.New("operation not valid for current state")

	// ErrAlreadyPaid is returned when a completed transaction already exists for the auction
	ErrAlreadyPaid = errors.New("auction has already been paid")

	// ErrTransitionConflict is returned when a transition precondition no longer
	// holds because another invocation won the race. Benign: the caller may retry
	// or simply skip the item.
	ErrTransitionConflict = errors.New("state transition already applied by a concurrent operation")

	// ErrProvider is returned when a downstream payment/identity provider call fails
	ErrProvider = errors.New("payment provider error")

	// ErrProviderAccountMissing signals that a locally referenced provider account
	// no longer exists remotely and should be recreated.
	ErrProviderAccountMissing = errors.New("provider account no longer exists")

	// ErrRateLimited is returned when a throttling policy is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidCurrency is returned when the currency code is not a valid ISO code
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return CodeUnauthenticated
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case IsNotFoundError(err):
		return CodeNotFound
	case errors.Is(err, ErrAlreadyPaid), errors.Is(err, ErrTransitionConflict):
		return CodeConflict
	case errors.Is(err, ErrInvalidState):
		return CodeInvalidState
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidCurrency):
		return CodeInvalidRequest
	case errors.Is(err, ErrProvider):
		return CodeProviderError
	default:
		return CodeInternalServer
	}
}

// HTTPStatus maps a domain error to the HTTP status code exposed to callers
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyPaid), errors.Is(err, ErrTransitionConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidCurrency):
		return http.StatusBadRequest
	case errors.Is(err, ErrProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrAuctionNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrAccountNotFound)
}

// IsRetryableConflict checks if the error is a benign race that a caller may retry
func IsRetryableConflict(err error) bool {
	return errors.Is(err, ErrTransitionConflict)
}

// ProviderError carries details about a failed downstream provider call
type ProviderError struct {
	Op         string
	StatusCode int
	Err        error
}

// Error implements the error interface for ProviderError
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider call %s failed (status %d): %v", e.Op, e.StatusCode, e.Err)
}

// Unwrap returns the underlying error
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrProvider
func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// LogFields returns a map of fields for structured logging
func (e *ProviderError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "provider_error",
		"operation":   e.Op,
		"status_code": e.StatusCode,
		"error":       e.Err.Error(),
		"error_code":  CodeProviderError,
	}
}

// NewProviderError creates a detailed provider error
func NewProviderError(op string, statusCode int, err error) error {
	return &ProviderError{Op: op, StatusCode: statusCode, Err: err}
}

// RateLimitError carries the retry-after duration for throttled requests
type RateLimitError struct {
	Key        string
	RetryAfter time.Duration
}

// Error implements the error interface for RateLimitError
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s, retry after %s", e.Key, e.RetryAfter)
}

// Is checks if the target error is an ErrRateLimited
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// LogFields returns a map of fields for structured logging
func (e *RateLimitError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "rate_limited",
		"key":            e.Key,
		"retry_after_ms": e.RetryAfter.Milliseconds(),
		"error_code":     CodeRateLimited,
	}
}

// NewRateLimitError creates a new rate limit error with retry information
func NewRateLimitError(key string, retryAfter time.Duration) error {
	return &RateLimitError{Key: key, RetryAfter: retryAfter}
}
