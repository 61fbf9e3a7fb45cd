package auth

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yvain13/servicenow-mcp-sub001/internal/config"
)

func TestBasicManagerHeader(t *testing.T) {
	cfg := config.Config{
		InstanceURL: "https://x.service-now.com",
		Auth: config.AuthConfig{
			Type:  config.AuthTypeBasic,
			Basic: &config.BasicAuthConfig{Username: "admin", Password: "secret"},
		},
	}

	m, err := NewManager(cfg, nil)
	require.NoError(t, err)

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:secret"))

	// Deterministic and network-free: every call yields the same header.
	for i := 0; i < 3; i++ {
		headers, err := m.Headers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"Authorization": want}, headers)
	}
}

func TestAPIKeyManagerHeader(t *testing.T) {
	cfg := config.Config{
		InstanceURL: "https://x.service-now.com",
		Auth: config.AuthConfig{
			Type:   config.AuthTypeAPIKey,
			APIKey: &config.APIKeyConfig{Key: "the-key", Header: "x-sn-apikey"},
		},
	}

	m, err := NewManager(cfg, nil)
	require.NoError(t, err)

	headers, err := m.Headers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"x-sn-apikey": "the-key"}, headers)
}

func TestAPIKeyManagerDefaultHeader(t *testing.T) {
	m := newAPIKeyManager(&config.APIKeyConfig{Key: "k"})
	headers, err := m.Headers(context.Background())
	require.NoError(t, err)
	_, ok := headers[config.DefaultAPIKeyHeader]
	assert.True(t, ok)
}

func TestNewManagerRejectsUnknownType(t *testing.T) {
	cfg := config.Config{
		InstanceURL: "https://x.service-now.com",
		Auth:        config.AuthConfig{Type: "kerberos"},
	}
	_, err := NewManager(cfg, nil)
	assert.Error(t, err)
}
