package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yvain13/servicenow-mcp-sub001/internal/api"
)

func validBasicConfig() Config {
	return Config{
		InstanceURL: "https://x.service-now.com",
		Auth: AuthConfig{
			Type:  AuthTypeBasic,
			Basic: &BasicAuthConfig{Username: "admin", Password: "secret"},
		},
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	require.NoError(t, validBasicConfig().Validate())
}

func TestValidateRejectsEmptyInstanceURL(t *testing.T) {
	cfg := validBasicConfig()
	cfg.InstanceURL = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, api.IsConfigError(err))
}

func TestValidateRejectsRelativeInstanceURL(t *testing.T) {
	cfg := validBasicConfig()
	cfg.InstanceURL = "x.service-now.com"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownTransport(t *testing.T) {
	cfg := validBasicConfig()
	cfg.Transport = "carrier-pigeon"
	assert.Error(t, cfg.Validate())
}

func TestAuthConfigTaggedUnion(t *testing.T) {
	t.Run("declared type without sub-config", func(t *testing.T) {
		err := AuthConfig{Type: AuthTypeOAuth}.Validate()
		require.Error(t, err)
		assert.True(t, api.IsConfigError(err))
	})

	t.Run("contradictory sub-config populated", func(t *testing.T) {
		cfg := AuthConfig{
			Type:   AuthTypeBasic,
			Basic:  &BasicAuthConfig{Username: "a", Password: "b"},
			APIKey: &APIKeyConfig{Key: "k"},
		}
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing auth type", func(t *testing.T) {
		assert.Error(t, AuthConfig{}.Validate())
	})

	t.Run("unknown auth type", func(t *testing.T) {
		assert.Error(t, AuthConfig{Type: "kerberos"}.Validate())
	})

	t.Run("oauth requires password-grant credentials", func(t *testing.T) {
		cfg := AuthConfig{
			Type:  AuthTypeOAuth,
			OAuth: &OAuthConfig{ClientID: "id", ClientSecret: "secret"},
		}
		assert.Error(t, cfg.Validate(), "username/password are required for the password grant")
	})

	t.Run("valid apikey", func(t *testing.T) {
		cfg := AuthConfig{
			Type:   AuthTypeAPIKey,
			APIKey: &APIKeyConfig{Key: "k", Header: "x-sn-apikey"},
		}
		assert.NoError(t, cfg.Validate())
	})
}
