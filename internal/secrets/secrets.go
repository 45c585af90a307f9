// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads provider credentials from a directory of plain-text
// files. Each file is one secret: the filename is the key name and the
// trimmed contents are the value.
//
// Recognised key files: aggregator-api-key, google-places-api-key.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Key file names for each provider.
const (
	AggregatorAPIKey   = "aggregator-api-key"
	GooglePlacesAPIKey = "google-places-api-key"
)

// maxSecretSize skips files that are too large to be a credential.
const maxSecretSize = 4 << 10

// Secrets maps key file names to their values.
type Secrets map[string]string

// Load reads every regular, non-hidden file in dir. A missing directory is
// not an error and yields an empty set. Unreadable or oversized files are
// reported to w and skipped.
func Load(dir string, w io.Writer) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Secrets)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		info, err := entry.Info()
		if err == nil && info.Size() > maxSecretSize {
			fmt.Fprintf(w, "warning: skipping secret %s: larger than %d bytes\n", name, maxSecretSize)
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(w, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}

// Get returns the value for name, or "" when absent.
func (s Secrets) Get(name string) string {
	return s[name]
}

// Keys returns the loaded key names in sorted order. Values are never
// listed so the result is safe to log.
func (s Secrets) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ProviderKey returns the key file name holding the credential for the
// named provider, or "" for an unknown provider.
func ProviderKey(provider string) string {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "aggregator":
		return AggregatorAPIKey
	case "places":
		return GooglePlacesAPIKey
	default:
		return ""
	}
}
