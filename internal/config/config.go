// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tombee/zoho-expense/internal/integration/zohoexpense"
	"github.com/tombee/zoho-expense/internal/log"
	"github.com/tombee/zoho-expense/internal/secrets"
	pkgerrors "github.com/tombee/zoho-expense/pkg/errors"
)

// Config represents the complete zoho-expense configuration.
type Config struct {
	Zoho ZohoConfig `yaml:"zoho"`
	HTTP HTTPConfig `yaml:"http"`
	Log  LogConfig  `yaml:"log"`
}

// ZohoConfig holds the credential and tenant settings.
// Secret-valued fields accept env:NAME, keychain:NAME and ${NAME} references.
type ZohoConfig struct {
	// DataCenter is the Zoho region code (com, eu, in, com.au, jp, com.cn, ca).
	// Environment: ZOHO_EXPENSE_DATA_CENTER
	DataCenter string `yaml:"data_center"`

	// OrganizationID is the default tenant for every call.
	// Environment: ZOHO_EXPENSE_ORGANIZATION_ID
	OrganizationID string `yaml:"organization_id,omitempty"`

	// Environment: ZOHO_EXPENSE_CLIENT_ID
	ClientID string `yaml:"client_id,omitempty"`

	// Environment: ZOHO_EXPENSE_CLIENT_SECRET
	ClientSecret string `yaml:"client_secret,omitempty"`

	// RefreshToken is used to mint access tokens.
	// Environment: ZOHO_EXPENSE_REFRESH_TOKEN
	RefreshToken string `yaml:"refresh_token,omitempty"`

	// AccessToken is used as-is when no refresh token is configured.
	// Environment: ZOHO_EXPENSE_ACCESS_TOKEN
	AccessToken string `yaml:"access_token,omitempty"`

	// RedirectURL is the OAuth2 redirect registered with the Zoho client.
	RedirectURL string `yaml:"redirect_url,omitempty"`

	// APIBaseURL replaces the data center's API host, e.g. for a proxy.
	// Environment: ZOHO_EXPENSE_API_BASE_URL
	APIBaseURL string `yaml:"api_base_url,omitempty"`
}

// HTTPConfig configures the HTTP client.
type HTTPConfig struct {
	// Timeout bounds each request.
	// Environment: ZOHO_EXPENSE_TIMEOUT
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`

	// RateLimit caps requests per second. 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the log level (trace, debug, info, warn, error).
	Level string `yaml:"level"`

	// Format is the log format (json, text).
	Format string `yaml:"format"`

	// AddSource adds source file and line to log records.
	AddSource bool `yaml:"add_source,omitempty"`
}

// DefaultRedirectURL is used for the authorization code flow when none is configured.
const DefaultRedirectURL = "http://localhost:8765/callback"

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Zoho: ZohoConfig{
			DataCenter:  zohoexpense.DefaultDataCenter,
			RedirectURL: DefaultRedirectURL,
		},
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file, then applies environment
// overrides and validates the result. An empty path uses the default
// location; a missing default file is not an error.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	path, explicit := configPath, configPath != ""
	if !explicit {
		var err error
		if path, err = ConfigPath(); err != nil {
			return nil, &pkgerrors.ConfigError{Key: "config_file", Reason: "cannot determine config directory", Cause: err}
		}
	}

	if err := cfg.loadFromFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, &pkgerrors.ConfigError{
				Key:    "config_file",
				Reason: fmt.Sprintf("failed to load from %s", path),
				Cause:  err,
			}
		}
	}

	// Apply defaults to any zero values (handles minimal configs)
	cfg.applyDefaults()

	// Override with environment variables
	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile reads the config file alone, without environment overrides or
// validation, for commands that edit and save it. A missing file yields the
// defaults. The path it read (or would create) is returned with it.
func LoadFile(configPath string) (*Config, string, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return nil, "", &pkgerrors.ConfigError{Key: "config_file", Reason: "cannot determine config directory", Cause: err}
		}
	}

	cfg := Default()
	if err := cfg.loadFromFile(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, path, &pkgerrors.ConfigError{
			Key:    "config_file",
			Reason: fmt.Sprintf("failed to load from %s", path),
			Cause:  err,
		}
	}
	cfg.applyDefaults()
	return cfg, path, nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Zoho.DataCenter == "" {
		c.Zoho.DataCenter = d.Zoho.DataCenter
	}
	if c.Zoho.RedirectURL == "" {
		c.Zoho.RedirectURL = d.Zoho.RedirectURL
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = d.HTTP.Timeout
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// loadFromFile loads configuration from a YAML file.
func (c *Config) loadFromFile(path string) error {
	// Expand home directory if present
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	return nil
}

// loadFromEnv loads configuration from environment variables.
func (c *Config) loadFromEnv() {
	// Zoho configuration
	if val := os.Getenv("ZOHO_EXPENSE_DATA_CENTER"); val != "" {
		c.Zoho.DataCenter = strings.ToLower(val)
	}
	if val := os.Getenv("ZOHO_EXPENSE_ORGANIZATION_ID"); val != "" {
		c.Zoho.OrganizationID = val
	}
	if val := os.Getenv("ZOHO_EXPENSE_CLIENT_ID"); val != "" {
		c.Zoho.ClientID = val
	}
	if val := os.Getenv("ZOHO_EXPENSE_CLIENT_SECRET"); val != "" {
		c.Zoho.ClientSecret = val
	}
	if val := os.Getenv("ZOHO_EXPENSE_REFRESH_TOKEN"); val != "" {
		c.Zoho.RefreshToken = val
	}
	if val := os.Getenv("ZOHO_EXPENSE_ACCESS_TOKEN"); val != "" {
		c.Zoho.AccessToken = val
	}
	if val := os.Getenv("ZOHO_EXPENSE_API_BASE_URL"); val != "" {
		c.Zoho.APIBaseURL = val
	}

	// HTTP configuration
	if val := os.Getenv("ZOHO_EXPENSE_TIMEOUT"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			c.HTTP.Timeout = duration
		}
	}
	if val := os.Getenv("ZOHO_EXPENSE_RATE_LIMIT"); val != "" {
		if rps, err := strconv.ParseFloat(val, 64); err == nil {
			c.HTTP.RateLimit = rps
		}
	}

	// Log configuration, with the same precedence as log.FromEnv
	debug := os.Getenv("ZOHO_EXPENSE_DEBUG")
	if debug == "true" || debug == "1" {
		c.Log.Level = "debug"
		c.Log.AddSource = true
	} else if val := os.Getenv("ZOHO_EXPENSE_LOG_LEVEL"); val != "" {
		c.Log.Level = strings.ToLower(val)
	} else if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = strings.ToLower(val)
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = strings.ToLower(val)
	}
	if val := os.Getenv("LOG_SOURCE"); val != "" {
		c.Log.AddSource = val == "1" || strings.ToLower(val) == "true"
	}
}

// Validate checks that the configuration is valid. Credential completeness
// is checked separately by ValidateCredential, since the authorization
// flow runs before a refresh token exists.
func (c *Config) Validate() error {
	if !zohoexpense.IsSupportedDataCenter(c.Zoho.DataCenter) {
		return &pkgerrors.ConfigError{
			Key:    "zoho.data_center",
			Reason: fmt.Sprintf("unsupported data center %q (supported: %s)", c.Zoho.DataCenter, strings.Join(zohoexpense.DataCenters, ", ")),
		}
	}
	if c.HTTP.Timeout <= 0 {
		return &pkgerrors.ConfigError{
			Key:    "http.timeout",
			Reason: fmt.Sprintf("must be positive, got %v", c.HTTP.Timeout),
		}
	}
	if c.HTTP.RateLimit < 0 {
		return &pkgerrors.ConfigError{
			Key:    "http.rate_limit",
			Reason: fmt.Sprintf("must not be negative, got %v", c.HTTP.RateLimit),
		}
	}

	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return &pkgerrors.ConfigError{Key: "log.level", Reason: fmt.Sprintf("unknown level %q", c.Log.Level)}
	}
	switch log.Format(c.Log.Format) {
	case log.FormatJSON, log.FormatText:
	default:
		return &pkgerrors.ConfigError{Key: "log.format", Reason: fmt.Sprintf("unknown format %q", c.Log.Format)}
	}

	return nil
}

// ValidateCredential checks that either an access token or a complete
// refresh-token credential is configured.
func (c *Config) ValidateCredential() error {
	if err := c.Credential().Validate(); err != nil {
		return &pkgerrors.ConfigError{
			Key:    "zoho",
			Reason: "incomplete credential; set access_token, or client_id, client_secret and refresh_token",
			Cause:  err,
		}
	}
	return nil
}

// ResolveSecrets replaces secret references in credential fields with
// their values.
func (c *Config) ResolveSecrets(ctx context.Context, registry *secrets.Registry) error {
	fields := []struct {
		key   string
		value *string
	}{
		{"zoho.organization_id", &c.Zoho.OrganizationID},
		{"zoho.client_id", &c.Zoho.ClientID},
		{"zoho.client_secret", &c.Zoho.ClientSecret},
		{"zoho.refresh_token", &c.Zoho.RefreshToken},
		{"zoho.access_token", &c.Zoho.AccessToken},
	}

	for _, f := range fields {
		if *f.value == "" || !registry.IsReference(*f.value) {
			continue
		}
		resolved, err := registry.Resolve(ctx, *f.value)
		if err != nil {
			return &pkgerrors.ConfigError{
				Key:    f.key,
				Reason: "failed to resolve secret reference",
				Cause:  err,
			}
		}
		*f.value = resolved
	}
	return nil
}

// Credential returns the Zoho credential described by the configuration.
func (c *Config) Credential() zohoexpense.Credential {
	return zohoexpense.Credential{
		DataCenter:     c.Zoho.DataCenter,
		OrganizationID: c.Zoho.OrganizationID,
		ClientID:       c.Zoho.ClientID,
		ClientSecret:   c.Zoho.ClientSecret,
		RefreshToken:   c.Zoho.RefreshToken,
		AccessToken:    c.Zoho.AccessToken,
	}
}

// LoggerConfig returns the logging configuration for log.New.
func (c *Config) LoggerConfig() *log.Config {
	cfg := log.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Format = log.Format(c.Log.Format)
	cfg.AddSource = c.Log.AddSource
	return cfg
}

// Save writes the configuration as YAML, creating the parent directory.
// The file is written with owner-only permissions since it may hold secrets.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
