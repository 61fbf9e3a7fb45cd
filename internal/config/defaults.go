package config

const (
	// DefaultTimeoutSeconds bounds every outbound HTTP call.
	DefaultTimeoutSeconds = 30

	// DefaultAPIKeyHeader is the header ServiceNow's API key policy
	// inspects by default.
	DefaultAPIKeyHeader = "x-sn-apikey"

	// DefaultHost is the bind address for HTTP transports.
	DefaultHost = "localhost"

	// DefaultPort is the listen port for HTTP transports.
	DefaultPort = 8080

	// oauthTokenPath is appended to the instance URL when no explicit
	// token URL is configured.
	oauthTokenPath = "/oauth_token.do"
)

// GetDefaultConfig returns the configuration defaults applied before the
// config file and environment overlay.
func GetDefaultConfig() Config {
	return Config{
		Timeout:   DefaultTimeoutSeconds,
		Transport: TransportStdio,
		Host:      DefaultHost,
		Port:      DefaultPort,
	}
}

// TokenURL returns the OAuth token endpoint, deriving it from the
// instance URL when the config leaves it unset.
func (c Config) TokenURL() string {
	if c.Auth.OAuth != nil && c.Auth.OAuth.TokenURL != "" {
		return c.Auth.OAuth.TokenURL
	}
	return c.InstanceURL + oauthTokenPath
}
