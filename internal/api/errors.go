package api

import (
	"errors"
	"fmt"
)

// ConfigError indicates missing or contradictory configuration.
// It is fatal at startup; the server refuses to start with one pending.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Message)
}

// NewConfigError creates a ConfigError for the given field.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// IsConfigError checks if an error is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// AuthError indicates that credential acquisition failed. It is surfaced
// per tool call and is not fatal to the server; once configuration is
// corrected the next dispatch succeeds.
type AuthError struct {
	Message string
	Cause   error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

func (e *AuthError) Unwrap() error { return e.Cause }

// NewAuthError creates an AuthError wrapping an optional cause.
func NewAuthError(message string, cause error) *AuthError {
	return &AuthError{Message: message, Cause: cause}
}

// IsAuthError checks if an error is or wraps an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// ValidationError indicates bad tool parameters. It names the offending
// parameter so the caller can fix the request; it is never retried and
// never reaches the upstream API.
type ValidationError struct {
	Parameter string
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Parameter, e.Reason)
}

// NewValidationError creates a ValidationError for the given parameter.
func NewValidationError(parameter, reason string) *ValidationError {
	return &ValidationError{Parameter: parameter, Reason: reason}
}

// IsValidationError checks if an error is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// UnknownToolError indicates a dispatch for a tool name that is not
// registered. It short-circuits before any validation or network call.
type UnknownToolError struct {
	ToolName string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.ToolName)
}

// NewUnknownToolError creates an UnknownToolError for the given name.
func NewUnknownToolError(toolName string) *UnknownToolError {
	return &UnknownToolError{ToolName: toolName}
}

// IsUnknownTool checks if an error is or wraps an UnknownToolError.
func IsUnknownTool(err error) bool {
	var unknownErr *UnknownToolError
	return errors.As(err, &unknownErr)
}

// UpstreamError indicates a non-2xx response or transport failure from
// the ServiceNow API. The underlying status passes through unchanged so
// the caller can decide whether to retry; the server never retries.
type UpstreamError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("servicenow request failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("servicenow request failed: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Cause }

// NewUpstreamError creates an UpstreamError carrying the HTTP status.
func NewUpstreamError(statusCode int, message string) *UpstreamError {
	return &UpstreamError{StatusCode: statusCode, Message: message}
}

// NewUpstreamTransportError creates an UpstreamError for a transport
// failure where no HTTP status is available.
func NewUpstreamTransportError(cause error) *UpstreamError {
	return &UpstreamError{Message: cause.Error(), Cause: cause}
}

// IsUpstreamError checks if an error is or wraps an UpstreamError.
func IsUpstreamError(err error) bool {
	var upstreamErr *UpstreamError
	return errors.As(err, &upstreamErr)
}
