package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yvain13/servicenow-mcp-sub001/internal/api"
	"github.com/yvain13/servicenow-mcp-sub001/internal/config"
)

func oauthTestConfig(tokenURL string) config.Config {
	return config.Config{
		InstanceURL: "https://x.service-now.com",
		Auth: config.AuthConfig{
			Type: config.AuthTypeOAuth,
			OAuth: &config.OAuthConfig{
				ClientID:     "client-id",
				ClientSecret: "client-secret",
				Username:     "admin",
				Password:     "secret",
				TokenURL:     tokenURL,
			},
		},
	}
}

// tokenServer counts token requests and issues tokens with the given
// lifetime in seconds.
func tokenServer(t *testing.T, requests *int64, expiresIn int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(requests, 1)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		assert.Equal(t, "admin", r.PostForm.Get("username"))
		assert.Equal(t, "secret", r.PostForm.Get("password"))
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"token-%d","token_type":"Bearer","expires_in":%d}`, n, expiresIn)
	}))
}

func TestOAuthTokenCachedWithinTTL(t *testing.T) {
	var requests int64
	server := tokenServer(t, &requests, 3600)
	defer server.Close()

	m := newOAuthManager(oauthTestConfig(server.URL), server.Client())

	first, err := m.Headers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-1", first["Authorization"])

	second, err := m.Headers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-1", second["Authorization"])

	assert.EqualValues(t, 1, atomic.LoadInt64(&requests), "second call within TTL must use the cached token")
}

func TestOAuthTokenRefreshedAfterExpiry(t *testing.T) {
	var requests int64
	// Lifetime below the expiry margin, so the token counts as expired
	// by the time of the second call.
	server := tokenServer(t, &requests, 5)
	defer server.Close()

	m := newOAuthManager(oauthTestConfig(server.URL), server.Client())

	_, err := m.Headers(context.Background())
	require.NoError(t, err)

	second, err := m.Headers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-2", second["Authorization"])

	assert.EqualValues(t, 2, atomic.LoadInt64(&requests))
}

func TestOAuthConcurrentCallersShareOneRequest(t *testing.T) {
	var requests int64
	server := tokenServer(t, &requests, 3600)
	defer server.Close()

	m := newOAuthManager(oauthTestConfig(server.URL), server.Client())

	const callers = 16
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.Headers(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, atomic.LoadInt64(&requests), "concurrent refresh must collapse into one token request")
}

func TestOAuthTokenEndpointFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"access_denied"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	m := newOAuthManager(oauthTestConfig(server.URL), server.Client())

	_, err := m.Headers(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsAuthError(err), "token endpoint failure must surface as AuthError")
}

func TestTokenUsable(t *testing.T) {
	assert.False(t, tokenUsable(nil))
}
