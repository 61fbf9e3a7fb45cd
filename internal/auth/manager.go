package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/yvain13/servicenow-mcp-sub001/internal/api"
	"github.com/yvain13/servicenow-mcp-sub001/internal/config"
)

// Manager produces the HTTP authentication headers for outbound
// ServiceNow requests. Basic and API key managers are constant and
// network-free; the OAuth manager performs token requests and caches
// the result until expiry.
type Manager interface {
	// Headers returns the authentication headers for the next request.
	// The returned map is owned by the caller.
	Headers(ctx context.Context) (map[string]string, error)
}

// NewManager builds the Manager matching the configured auth scheme.
// The config must already have passed validation; an unknown scheme
// still returns a ConfigError rather than a nil manager.
func NewManager(cfg config.Config, httpClient *http.Client) (Manager, error) {
	switch cfg.Auth.Type {
	case config.AuthTypeBasic:
		return newBasicManager(cfg.Auth.Basic), nil
	case config.AuthTypeOAuth:
		return newOAuthManager(cfg, httpClient), nil
	case config.AuthTypeAPIKey:
		return newAPIKeyManager(cfg.Auth.APIKey), nil
	default:
		return nil, api.NewConfigError("auth.type", fmt.Sprintf("unknown auth type %q", cfg.Auth.Type))
	}
}

// basicManager serves a precomputed Basic header. Constant per config.
type basicManager struct {
	header string
}

func newBasicManager(cfg *config.BasicAuthConfig) *basicManager {
	credentials := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.Password))
	return &basicManager{header: "Basic " + credentials}
}

func (m *basicManager) Headers(ctx context.Context) (map[string]string, error) {
	return map[string]string{"Authorization": m.header}, nil
}

// apiKeyManager serves a static API key header. No expiry, no network.
type apiKeyManager struct {
	header string
	key    string
}

func newAPIKeyManager(cfg *config.APIKeyConfig) *apiKeyManager {
	header := cfg.Header
	if header == "" {
		header = config.DefaultAPIKeyHeader
	}
	return &apiKeyManager{header: header, key: cfg.Key}
}

func (m *apiKeyManager) Headers(ctx context.Context) (map[string]string, error) {
	return map[string]string{m.header: m.key}, nil
}
