package config

import (
	"fmt"
	"net/url"

	"github.com/yvain13/servicenow-mcp-sub001/internal/api"
)

// Validate checks the full server configuration. It returns a ConfigError
// on the first problem found; a config that passes is safe to serve with.
func (c Config) Validate() error {
	if c.InstanceURL == "" {
		return api.NewConfigError("instanceUrl", "instance URL must not be empty")
	}
	parsed, err := url.Parse(c.InstanceURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return api.NewConfigError("instanceUrl", fmt.Sprintf("not an absolute URL: %q", c.InstanceURL))
	}
	if c.Timeout < 0 {
		return api.NewConfigError("timeout", "timeout must not be negative")
	}

	switch c.Transport {
	case TransportStdio, TransportSSE, TransportStreamableHTTP, "":
	default:
		return api.NewConfigError("transport", fmt.Sprintf("unknown transport %q", c.Transport))
	}

	return c.Auth.Validate()
}

// Validate enforces the tagged-union invariant: the sub-config matching
// the declared type must be present and complete, and no other
// sub-config may be populated. Rejecting the mismatch here, at
// construction/load time, keeps a disagreement between Type and the
// populated field from surfacing as a confusing failure on first use.
func (a AuthConfig) Validate() error {
	switch a.Type {
	case AuthTypeBasic:
		if a.Basic == nil {
			return api.NewConfigError("auth.basic", "auth type is basic but basic credentials are missing")
		}
		if a.OAuth != nil || a.APIKey != nil {
			return api.NewConfigError("auth", "auth type is basic but another credential block is populated")
		}
		if a.Basic.Username == "" || a.Basic.Password == "" {
			return api.NewConfigError("auth.basic", "username and password are required")
		}
	case AuthTypeOAuth:
		if a.OAuth == nil {
			return api.NewConfigError("auth.oauth", "auth type is oauth but oauth credentials are missing")
		}
		if a.Basic != nil || a.APIKey != nil {
			return api.NewConfigError("auth", "auth type is oauth but another credential block is populated")
		}
		if a.OAuth.ClientID == "" || a.OAuth.ClientSecret == "" {
			return api.NewConfigError("auth.oauth", "clientId and clientSecret are required")
		}
		if a.OAuth.Username == "" || a.OAuth.Password == "" {
			return api.NewConfigError("auth.oauth", "username and password are required for the password grant")
		}
	case AuthTypeAPIKey:
		if a.APIKey == nil {
			return api.NewConfigError("auth.apikey", "auth type is apikey but the API key block is missing")
		}
		if a.Basic != nil || a.OAuth != nil {
			return api.NewConfigError("auth", "auth type is apikey but another credential block is populated")
		}
		if a.APIKey.Key == "" {
			return api.NewConfigError("auth.apikey", "key is required")
		}
	case "":
		return api.NewConfigError("auth.type", "auth type is required (basic, oauth, or apikey)")
	default:
		return api.NewConfigError("auth.type", fmt.Sprintf("unknown auth type %q", a.Type))
	}
	return nil
}
