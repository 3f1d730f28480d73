package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrCurrencyConversion is matched by every failure returned from the amount converter.
var ErrCurrencyConversion = errors.New("currency conversion failed")

// ErrNoConversionRoute indicates that the currency graph has no path between two currencies.
var ErrNoConversionRoute = errors.New("no conversion route found")

// ErrPriceNotFound indicates that a route exists but one of its hops has no price at or before the requested date.
var ErrPriceNotFound = errors.New("no exchange rate price found")

// ErrRoutingTableNotReady indicates that a conversion was requested before the first routing table build completed.
// It is transient; callers may retry.
var ErrRoutingTableNotReady = errors.New("currency routing table is not ready yet")

// ErrExternalSourceFetch indicates that fetching prices for one pair from the external source failed.
var ErrExternalSourceFetch = errors.New("failed to fetch prices from external source")

// AppError carries an HTTP-ish status code together with a message and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an error matching ErrNotFound with the given detail.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// NewValidationError returns an error matching ErrValidation with the given detail.
func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// ConversionError is returned by the amount converter. It matches ErrCurrencyConversion
// as well as the specific cause (route, price or readiness).
type ConversionError struct {
	SourceCurrencyCode string
	TargetCurrencyCode string
	Err                error
}

func (e *ConversionError) Error() string {
	return e.Err.Error()
}

func (e *ConversionError) Unwrap() []error {
	return []error{ErrCurrencyConversion, e.Err}
}

// NewConversionError wraps err as a ConversionError for the given currency codes.
func NewConversionError(source, target string, err error) *ConversionError {
	return &ConversionError{SourceCurrencyCode: source, TargetCurrencyCode: target, Err: err}
}
