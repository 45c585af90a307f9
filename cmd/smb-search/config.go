// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/smb-search/internal/search"
	"github.com/pdiddy/smb-search/internal/secrets"
	"github.com/pdiddy/smb-search/internal/session"
	"github.com/pdiddy/smb-search/pkg/types"
)

const (
	envPrefix        = "SMB_SEARCH"
	defaultUserAgent = "smb-search/0.1"
	defaultAddr      = ":8080"
)

// setDefaults registers every config key so environment variables reach
// Unmarshal even when no config file sets them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("provider.name", search.ProviderAggregator)
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.timeout", search.DefaultTimeout)
	v.SetDefault("provider.user_agent", defaultUserAgent)
	v.SetDefault("server.addr", defaultAddr)
	v.SetDefault("server.session_ttl", session.DefaultTTL)
	v.SetDefault("server.secure_cookies", false)
}

// configureEnv maps keys like provider.api_key to SMB_SEARCH_PROVIDER_API_KEY.
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// loadAppConfig resolves configuration from v. The provider API key falls
// back to the matching file in the secrets directory when neither the
// config file nor the environment sets it.
func loadAppConfig(v *viper.Viper, s secrets.Secrets) (types.AppConfig, error) {
	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}

	if cfg.Provider.APIKey == "" {
		cfg.Provider.APIKey = s.Get(secrets.ProviderKey(cfg.Provider.Name))
	}
	if cfg.Provider.Timeout <= 0 {
		cfg.Provider.Timeout = search.DefaultTimeout
	}
	if cfg.Provider.UserAgent == "" {
		cfg.Provider.UserAgent = defaultUserAgent
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultAddr
	}
	if cfg.Server.SessionTTL <= 0 {
		cfg.Server.SessionTTL = session.DefaultTTL
	}
	return cfg, nil
}

// providerTimeout is the http.Client ceiling. It sits above the search
// deadline so the context deadline fires first.
func providerTimeout(cfg types.ProviderConfig) time.Duration {
	return cfg.Timeout + 5*time.Second
}
