package errors

import (
	"errors"
	"fmt"
)

// Error taxonomy of the time series core. Every failure surfaced by the
// calendar, index and aggregation packages wraps exactly one of these, so
// callers branch with errors.Is.
var (
	// ErrOutOfRange marks a date or interval outside the series domain, or an
	// interval that covers no sample.
	ErrOutOfRange = errors.New("out of range")

	// ErrInvalidMode marks an aggregation mode the series cannot answer
	// (unknown mode, sum on a constant series, several intervals for last).
	ErrInvalidMode = errors.New("invalid aggregation mode")

	// ErrMalformedInput marks construction input that can never form a series.
	ErrMalformedInput = errors.New("malformed input")
)

// OutOfRangef wraps ErrOutOfRange with a formatted message.
func OutOfRangef(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrOutOfRange, fmt.Sprintf(format, args...))
}

// InvalidModef wraps ErrInvalidMode with a formatted message.
func InvalidModef(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidMode, fmt.Sprintf(format, args...))
}

// Malformedf wraps ErrMalformedInput with a formatted message.
func Malformedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}

const (
	HttpInternalError        = "internal_error"
	HttpInvalidJsonError     = "invalid_json"
	HttpOutOfRangeError      = "out_of_range"
	HttpInvalidModeError     = "invalid_mode"
	HttpMalformedInputError  = "malformed_input"
	HttpSeriesNotFoundError  = "series_not_found"
	HttpDuplicateSeriesError = "duplicate_series"
)

// ErrorResponse is the error response body shared by every HTTP handler.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
