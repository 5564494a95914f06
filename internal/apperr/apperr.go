// Package apperr defines the typed errors shared across the fetch,
// provider and search layers.
package apperr

import (
	"errors"
	"fmt"
	"time"
)

// ValidationError represents a rejected query before any network activity.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err is a ValidationError (even when wrapped).
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// TimeoutError represents a request that was aborted after its deadline.
type TimeoutError struct {
	URL     string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %s", e.URL, e.Timeout)
}

// IsTimeoutError reports whether err is a TimeoutError (even when wrapped).
func IsTimeoutError(err error) bool {
	var tErr *TimeoutError
	return errors.As(err, &tErr)
}

// StatusError represents a response outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s returned status %d", e.URL, e.StatusCode)
}

// IsStatusError reports whether err is a StatusError (even when wrapped).
func IsStatusError(err error) bool {
	var sErr *StatusError
	return errors.As(err, &sErr)
}

// ParseError represents a response body that could not be decoded into
// the provider's schema.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decoding %s response: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError wraps a decode failure with the provider name.
func NewParseError(source string, err error) *ParseError {
	return &ParseError{Source: source, Err: err}
}

// IsParseError reports whether err is a ParseError (even when wrapped).
func IsParseError(err error) bool {
	var pErr *ParseError
	return errors.As(err, &pErr)
}
