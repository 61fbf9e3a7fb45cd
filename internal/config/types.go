package config

import "time"

// AuthType selects which authentication scheme the server uses against
// the ServiceNow instance.
type AuthType string

const (
	// AuthTypeBasic authenticates with a username/password Basic header.
	AuthTypeBasic AuthType = "basic"
	// AuthTypeOAuth authenticates with a password-grant OAuth bearer token.
	AuthTypeOAuth AuthType = "oauth"
	// AuthTypeAPIKey authenticates with a static API key header.
	AuthTypeAPIKey AuthType = "apikey"
)

// BasicAuthConfig holds credentials for Basic authentication.
type BasicAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// OAuthConfig holds credentials for the OAuth password grant.
// TokenURL defaults to {InstanceURL}/oauth_token.do when unset.
type OAuthConfig struct {
	ClientID     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	TokenURL     string `yaml:"tokenUrl,omitempty"`
}

// APIKeyConfig holds a static API key and the header it is sent in.
type APIKeyConfig struct {
	Key    string `yaml:"key"`
	Header string `yaml:"header,omitempty"`
}

// AuthConfig is a tagged union over the three authentication schemes.
// Exactly the sub-config matching Type must be populated; Validate
// rejects both a missing sub-config and a contradictory extra one.
type AuthConfig struct {
	Type   AuthType         `yaml:"type"`
	Basic  *BasicAuthConfig `yaml:"basic,omitempty"`
	OAuth  *OAuthConfig     `yaml:"oauth,omitempty"`
	APIKey *APIKeyConfig    `yaml:"apikey,omitempty"`
}

// Config is the top-level server configuration.
type Config struct {
	InstanceURL string     `yaml:"instanceUrl"`
	Auth        AuthConfig `yaml:"auth"`
	Debug       bool       `yaml:"debug,omitempty"`
	// Timeout for outbound HTTP calls, in seconds.
	Timeout int `yaml:"timeout,omitempty"`

	// Transport settings for the MCP endpoint.
	Transport string `yaml:"transport,omitempty"`
	Host      string `yaml:"host,omitempty"`
	Port      int    `yaml:"port,omitempty"`
}

const (
	// TransportStreamableHTTP is the streamable HTTP transport.
	TransportStreamableHTTP = "streamable-http"
	// TransportSSE is the Server-Sent Events transport.
	TransportSSE = "sse"
	// TransportStdio is the standard I/O transport.
	TransportStdio = "stdio"
)

// APIURL returns the base URL of the ServiceNow Table API. It is always
// derived from InstanceURL, never stored.
func (c Config) APIURL() string {
	return c.InstanceURL + "/api/now"
}

// HTTPTimeout returns the outbound call timeout as a duration.
func (c Config) HTTPTimeout() time.Duration {
	if c.Timeout <= 0 {
		return time.Duration(DefaultTimeoutSeconds) * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// NewBasicAuthConfig builds a validated basic AuthConfig.
func NewBasicAuthConfig(username, password string) (AuthConfig, error) {
	cfg := AuthConfig{
		Type:  AuthTypeBasic,
		Basic: &BasicAuthConfig{Username: username, Password: password},
	}
	if err := cfg.Validate(); err != nil {
		return AuthConfig{}, err
	}
	return cfg, nil
}

// NewOAuthConfig builds a validated oauth AuthConfig.
func NewOAuthConfig(clientID, clientSecret, username, password, tokenURL string) (AuthConfig, error) {
	cfg := AuthConfig{
		Type: AuthTypeOAuth,
		OAuth: &OAuthConfig{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Username:     username,
			Password:     password,
			TokenURL:     tokenURL,
		},
	}
	if err := cfg.Validate(); err != nil {
		return AuthConfig{}, err
	}
	return cfg, nil
}

// NewAPIKeyConfig builds a validated apikey AuthConfig.
func NewAPIKeyConfig(key, header string) (AuthConfig, error) {
	if header == "" {
		header = DefaultAPIKeyHeader
	}
	cfg := AuthConfig{
		Type:   AuthTypeAPIKey,
		APIKey: &APIKeyConfig{Key: key, Header: header},
	}
	if err := cfg.Validate(); err != nil {
		return AuthConfig{}, err
	}
	return cfg, nil
}
