package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for request validation.
var (
	ErrInvalidVIN   = errors.New("invalid VIN format")
	ErrCheckDigit   = errors.New("VIN check digit mismatch")
	ErrMissingField = errors.New("missing required field")
	ErrOutOfRange   = errors.New("value out of valid range")
	ErrInvalidEnum  = errors.New("invalid enum value")
)

// Validation error codes returned to API callers.
const (
	CodeInvalidVINFormat = "400_INVALID_VIN_FORMAT"
	CodeCheckDigitFail   = "422_CHECK_DIGIT_FAIL"
	CodeMissingField     = "400_MISSING_FIELD"
	CodeOutOfRange       = "400_OUT_OF_RANGE"
	CodeInvalidEnum      = "400_INVALID_ENUM"
)

// ValidationError wraps a sentinel with the offending field and a code.
type ValidationError struct {
	Field   string
	Value   string
	Code    string
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s (value=%q)", e.Wrapped, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Wrapped }

// Status returns the HTTP status implied by the error code.
func (e *ValidationError) Status() int {
	if e.Code == CodeCheckDigitFail {
		return 422
	}
	return 400
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, value, code string, wrapped error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Code: code, Wrapped: wrapped}
}
