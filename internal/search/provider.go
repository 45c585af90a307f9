// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/smb-search/pkg/types"
)

// Provider names accepted in configuration.
const (
	ProviderAggregator = "aggregator"
	ProviderPlaces     = "places"
)

// ErrMissingAPIKey is returned when the selected provider has no credential.
var ErrMissingAPIKey = errors.New("provider API key is not configured")

// NewProvider builds the backend named by cfg.Name. An empty name selects
// the aggregator. The client is shared by every request the backend makes.
func NewProvider(cfg types.ProviderConfig, client *http.Client) (Provider, error) {
	if client == nil {
		client = http.DefaultClient
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Name)) {
	case "", ProviderAggregator:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("provider %s: base_url is required", ProviderAggregator)
		}
		return &AggregatorBackend{Client: client}, nil
	case ProviderPlaces:
		return &PlacesBackend{Client: client}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want %s or %s)", cfg.Name, ProviderAggregator, ProviderPlaces)
	}
}
