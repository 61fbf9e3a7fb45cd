package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yvain13/servicenow-mcp-sub001/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/servicenow-mcp"
	configFileName = "config.yaml"
)

// DefaultConfigPath returns the user-level configuration directory.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// LoadConfig loads configuration from the given directory, then overlays
// SERVICENOW_* environment variables. A missing config.yaml is not an
// error; the environment alone can describe a complete configuration.
//
// The returned Config is validated; a ConfigError here is fatal at
// startup.
func LoadConfig(configPath string) (Config, error) {
	cfg := GetDefaultConfig()

	configFilePath := filepath.Join(configPath, configFileName)
	data, err := os.ReadFile(configFilePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logging.Info("ConfigLoader", "No config.yaml found at %s, using defaults and environment", configFilePath)
	case err != nil:
		return Config{}, fmt.Errorf("error reading config from %s: %w", configFilePath, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("error parsing config from %s: %w", configFilePath, err)
		}
		logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays SERVICENOW_* environment variables onto cfg.
// Environment values win over file values, matching the upstream
// adapter's configuration surface.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SERVICENOW_INSTANCE_URL"); v != "" {
		cfg.InstanceURL = strings.TrimSuffix(v, "/")
	}
	if v := os.Getenv("SERVICENOW_TIMEOUT"); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil {
			cfg.Timeout = timeout
		} else {
			logging.Warn("ConfigLoader", "Ignoring non-numeric SERVICENOW_TIMEOUT=%q", v)
		}
	}
	if v := os.Getenv("SERVICENOW_DEBUG"); v != "" {
		cfg.Debug = v == "1" || strings.EqualFold(v, "true")
	}

	authType := AuthType(strings.ToLower(os.Getenv("SERVICENOW_AUTH_TYPE")))
	if authType == "" {
		return
	}
	cfg.Auth = AuthConfig{Type: authType}

	switch authType {
	case AuthTypeBasic:
		cfg.Auth.Basic = &BasicAuthConfig{
			Username: os.Getenv("SERVICENOW_USERNAME"),
			Password: os.Getenv("SERVICENOW_PASSWORD"),
		}
	case AuthTypeOAuth:
		cfg.Auth.OAuth = &OAuthConfig{
			ClientID:     os.Getenv("SERVICENOW_CLIENT_ID"),
			ClientSecret: os.Getenv("SERVICENOW_CLIENT_SECRET"),
			Username:     os.Getenv("SERVICENOW_USERNAME"),
			Password:     os.Getenv("SERVICENOW_PASSWORD"),
			TokenURL:     os.Getenv("SERVICENOW_TOKEN_URL"),
		}
	case AuthTypeAPIKey:
		header := os.Getenv("SERVICENOW_API_KEY_HEADER")
		if header == "" {
			header = DefaultAPIKeyHeader
		}
		cfg.Auth.APIKey = &APIKeyConfig{
			Key:    os.Getenv("SERVICENOW_API_KEY"),
			Header: header,
		}
	}
	// An unknown SERVICENOW_AUTH_TYPE is left for Validate to reject.
}
