package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig     `yaml:"server"`
	ContractsAPI UpstreamConfig   `yaml:"contracts_api"`
	CatalogsAPI  UpstreamConfig   `yaml:"catalogs_api"`
	HTTPClient   HTTPClientConfig `yaml:"http_client"`
	Auth         AuthConfig       `yaml:"auth"`
	Log          LogConfig        `yaml:"log"`
}

// ServerConfig contains inbound HTTP server settings
type ServerConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

// UpstreamConfig locates one upstream API and holds its pre-shared auth code
type UpstreamConfig struct {
	BaseURL  string `yaml:"base_url"`
	AuthCode string `yaml:"auth_code"`
}

// HTTPClientConfig bounds outbound calls. The transport timeout is the only
// deadline applied to upstream requests.
type HTTPClientConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// AuthConfig controls bearer token caching
type AuthConfig struct {
	RefreshMarginMinutes int `yaml:"refresh_margin_minutes"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// Load reads configuration from a YAML file, then a .env file next to the
// working directory (if any), then the process environment.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	envInt("SERVER_PORT", &c.Server.Port)

	// Upstream APIs
	if val := os.Getenv("CONTRACTS_API_BASE_URL"); val != "" {
		c.ContractsAPI.BaseURL = val
	}
	if val := os.Getenv("CONTRACTS_API_AUTH_CODE"); val != "" {
		c.ContractsAPI.AuthCode = val
	}
	if val := os.Getenv("CATALOGS_API_BASE_URL"); val != "" {
		c.CatalogsAPI.BaseURL = val
	}
	if val := os.Getenv("CATALOGS_API_AUTH_CODE"); val != "" {
		c.CatalogsAPI.AuthCode = val
	}

	envInt("HTTP_CLIENT_TIMEOUT_SECONDS", &c.HTTPClient.TimeoutSeconds)
	envInt("AUTH_REFRESH_MARGIN_MINUTES", &c.Auth.RefreshMarginMinutes)

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

func envInt(key string, dst *int) {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*dst = n
		}
	}
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if err := validateUpstream("contracts_api", c.ContractsAPI); err != nil {
		return err
	}
	if err := validateUpstream("catalogs_api", c.CatalogsAPI); err != nil {
		return err
	}

	if c.Server.ReadTimeoutSeconds <= 0 {
		c.Server.ReadTimeoutSeconds = 10
	}
	if c.Server.WriteTimeoutSeconds <= 0 {
		c.Server.WriteTimeoutSeconds = 60
	}
	if c.HTTPClient.TimeoutSeconds <= 0 {
		c.HTTPClient.TimeoutSeconds = 30
	}
	if c.Auth.RefreshMarginMinutes <= 0 {
		c.Auth.RefreshMarginMinutes = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	return nil
}

func validateUpstream(name string, u UpstreamConfig) error {
	if u.BaseURL == "" {
		return fmt.Errorf("%s base_url is required", name)
	}
	parsed, err := url.Parse(u.BaseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%s base_url must be an absolute http(s) URL: %q", name, u.BaseURL)
	}
	if u.AuthCode == "" {
		return fmt.Errorf("%s auth_code is required", name)
	}
	return nil
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// RefreshMargin is how long before expiry a cached token stops being reused.
func (c *Config) RefreshMargin() time.Duration {
	return time.Duration(c.Auth.RefreshMarginMinutes) * time.Minute
}

// ClientTimeout is the outbound transport timeout.
func (c *Config) ClientTimeout() time.Duration {
	return time.Duration(c.HTTPClient.TimeoutSeconds) * time.Second
}
