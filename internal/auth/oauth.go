package auth

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/yvain13/servicenow-mcp-sub001/internal/api"
	"github.com/yvain13/servicenow-mcp-sub001/internal/config"
	"github.com/yvain13/servicenow-mcp-sub001/pkg/logging"
)

// expiryMargin is subtracted from the token lifetime so a token is
// refreshed shortly before it actually expires. Accounts for clock skew
// and network latency.
const expiryMargin = 30 * time.Second

// oauthManager obtains bearer tokens via the OAuth password grant and
// caches them in memory. Token state is the only shared mutable state in
// the server: reads of a valid token take the read lock only, and
// concurrent refreshes collapse into a single token request through the
// singleflight group.
type oauthManager struct {
	conf       *oauth2.Config
	username   string
	password   string
	httpClient *http.Client

	mu    sync.RWMutex
	token *oauth2.Token
	group singleflight.Group
}

func newOAuthManager(cfg config.Config, httpClient *http.Client) *oauthManager {
	return &oauthManager{
		conf: &oauth2.Config{
			ClientID:     cfg.Auth.OAuth.ClientID,
			ClientSecret: cfg.Auth.OAuth.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL: cfg.TokenURL(),
				// ServiceNow's token endpoint wants client credentials
				// in the POST body, not a Basic header.
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		username:   cfg.Auth.OAuth.Username,
		password:   cfg.Auth.OAuth.Password,
		httpClient: httpClient,
	}
}

func (m *oauthManager) Headers(ctx context.Context) (map[string]string, error) {
	// Fast path: a cached token that is still comfortably valid.
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()
	if tokenUsable(token) {
		return bearerHeader(token), nil
	}

	// Slow path: fetch a fresh token, deduplicating concurrent callers.
	result, err, _ := m.group.Do("token", func() (interface{}, error) {
		// Double-check after winning the singleflight slot; a racing
		// caller may have refreshed already.
		m.mu.RLock()
		cached := m.token
		m.mu.RUnlock()
		if tokenUsable(cached) {
			return cached, nil
		}
		return m.fetchToken(ctx)
	})
	if err != nil {
		return nil, api.NewAuthError("could not obtain OAuth token", err)
	}

	return bearerHeader(result.(*oauth2.Token)), nil
}

// fetchToken performs the password-grant token request and stores the
// result. Callers hold the singleflight slot, never the mutex.
func (m *oauthManager) fetchToken(ctx context.Context) (*oauth2.Token, error) {
	if m.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
	}

	token, err := m.conf.PasswordCredentialsToken(ctx, m.username, m.password)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	logging.Debug("Auth", "Obtained OAuth token, expires at %s", token.Expiry.Format(time.RFC3339))
	return token, nil
}

// tokenUsable reports whether the cached token can still be sent.
// A token with no expiry is treated as valid for the process lifetime.
func tokenUsable(token *oauth2.Token) bool {
	if token == nil || token.AccessToken == "" {
		return false
	}
	if token.Expiry.IsZero() {
		return true
	}
	return time.Until(token.Expiry) > expiryMargin
}

func bearerHeader(token *oauth2.Token) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token.AccessToken}
}
