package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	configErr := NewConfigError("auth.type", "unsupported scheme")
	authErr := NewAuthError("token request rejected", errors.New("401"))
	validationErr := NewValidationError("limit", "expected number, got string")
	unknownErr := NewUnknownToolError("create_ticket")
	upstreamErr := NewUpstreamError(503, "service unavailable")

	assert.True(t, IsConfigError(configErr))
	assert.True(t, IsAuthError(authErr))
	assert.True(t, IsValidationError(validationErr))
	assert.True(t, IsUnknownTool(unknownErr))
	assert.True(t, IsUpstreamError(upstreamErr))

	// The categories are disjoint.
	assert.False(t, IsAuthError(configErr))
	assert.False(t, IsValidationError(upstreamErr))
	assert.False(t, IsUpstreamError(authErr))
	assert.False(t, IsUnknownTool(validationErr))
}

func TestErrorClassification_Wrapped(t *testing.T) {
	err := fmt.Errorf("executing tool: %w", NewAuthError("refresh failed", nil))
	assert.True(t, IsAuthError(err))
	assert.False(t, IsAuthError(errors.New("plain error")))
	assert.False(t, IsAuthError(nil))
}

func TestAuthError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewAuthError("token endpoint unreachable", cause)
	assert.ErrorIs(t, err, cause)
}

func TestUpstreamError_StatusInMessage(t *testing.T) {
	err := NewUpstreamError(404, "No Record found")
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "No Record found")

	cause := errors.New("dial tcp: connection refused")
	terr := NewUpstreamTransportError(cause)
	assert.Zero(t, terr.StatusCode)
	assert.ErrorIs(t, terr, cause)
}

func TestConfigError_Message(t *testing.T) {
	withField := NewConfigError("instance_url", "must be an absolute URL")
	assert.Contains(t, withField.Error(), "instance_url")

	noField := &ConfigError{Message: "no configuration found"}
	assert.Contains(t, noField.Error(), "no configuration found")
}
