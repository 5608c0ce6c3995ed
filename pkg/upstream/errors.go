package upstream

import (
	"errors"
	"fmt"
	"time"
)

// HTTPError represents a failed upstream call.
// This covers both non-success HTTP status codes and transport-level
// failures (connection refused, DNS failure, broken pipe).
type HTTPError struct {
	// StatusCode is the HTTP status code (0 for transport failures)
	StatusCode int

	// Body is the response body read for diagnostics (may be truncated)
	Body string

	// Cause is the underlying transport error (if any)
	Cause error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream call failed (status %d): %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("upstream call failed: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *HTTPError) Unwrap() error {
	return e.Cause
}

// TimeoutError represents an upstream call that exceeded its deadline.
// The in-flight request is aborted when the deadline expires.
type TimeoutError struct {
	// Timeout is the configured deadline
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("upstream request timeout after %s", e.Timeout)
}

// ParseError represents an upstream response body that is not JSON.
// Shape mismatches inside a valid JSON document are not parse errors;
// the extractor skips them silently.
type ParseError struct {
	// RawResponse is the raw response body that failed to parse
	RawResponse string

	// Cause is the underlying parse error
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("upstream response parse error: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ConfigError represents an invalid or incomplete client configuration.
// This occurs at construction for missing required fields, or at call
// time when the credential source cannot produce a credential.
type ConfigError struct {
	// Field is the configuration field that is invalid
	Field string

	// Message describes the configuration error
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("upstream configuration error for field %q: %s", e.Field, e.Message)
}

// FailureKind classifies an upstream error for logging and metrics.
// The relay handler maps every kind to the same masked response; the
// kind only ever reaches server-side diagnostics.
func FailureKind(err error) string {
	var (
		timeoutErr *TimeoutError
		httpErr    *HTTPError
		parseErr   *ParseError
		configErr  *ConfigError
	)

	switch {
	case errors.As(err, &timeoutErr):
		return "timeout"
	case errors.As(err, &httpErr):
		return "http_error"
	case errors.As(err, &parseErr):
		return "parse_error"
	case errors.As(err, &configErr):
		return "config_error"
	default:
		return "unknown"
	}
}
