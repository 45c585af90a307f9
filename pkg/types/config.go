// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds settings for outbound HTTP requests.
type HTTPConfig struct {
	// Timeout bounds a single provider call, including reading the body.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent to providers
	// (e.g. "smb-search/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ProviderConfig selects and configures the business-data provider.
type ProviderConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Name selects the backend: "aggregator" or "places".
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// BaseURL overrides the provider endpoint. Empty means the provider default.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// APIKey authenticates against the provider. Never written to exports.
	APIKey string `json:"-" yaml:"-" mapstructure:"api_key"`
}

// ServerConfig holds settings for the web front end.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// SessionTTL is how long an idle browser session keeps its results (default 30m).
	SessionTTL time.Duration `json:"session_ttl" yaml:"session_ttl" mapstructure:"session_ttl"`

	// SecureCookies marks the session cookie Secure; enable behind HTTPS.
	SecureCookies bool `json:"secure_cookies" yaml:"secure_cookies" mapstructure:"secure_cookies"`
}

// AppConfig groups all configuration sections.
type AppConfig struct {
	Provider ProviderConfig `json:"provider" yaml:"provider" mapstructure:"provider"`
	Server   ServerConfig   `json:"server" yaml:"server" mapstructure:"server"`
}
