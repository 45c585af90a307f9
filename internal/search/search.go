// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search validates business queries and runs them against a single
// business-data provider.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/smb-search/internal/httputil"
	"github.com/pdiddy/smb-search/pkg/types"
)

// Bounds for the number of businesses a single search may request.
const (
	MinCount     = 1
	MaxCount     = 100
	DefaultCount = 20
)

// DefaultTimeout bounds a provider call when the config leaves Timeout unset.
const DefaultTimeout = 20 * time.Second

// ErrInvalidCount is returned when the requested result count is outside
// [MinCount, MaxCount] or is not an integer.
var ErrInvalidCount = errors.New("result count out of range")

// Query holds the three search form fields. Industry and Location are sent
// to the provider verbatim.
type Query struct {
	Industry string `json:"industry" yaml:"industry"`
	Location string `json:"location" yaml:"location"`
	Count    int    `json:"count" yaml:"count"`
}

// Validate checks the result count. Industry and Location are not inspected.
func (q Query) Validate() error {
	if q.Count < MinCount || q.Count > MaxCount {
		return fmt.Errorf("%w: got %d, want %d-%d", ErrInvalidCount, q.Count, MinCount, MaxCount)
	}
	return nil
}

// ParseCount converts a form value to a count. Blank or non-integer input
// is reported as ErrInvalidCount so the form shows the same warning.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidCount, s)
	}
	return n, nil
}

// Provider queries one external business-data service.
type Provider interface {
	Name() string
	Search(ctx context.Context, query Query, cfg types.ProviderConfig) ([]types.BusinessRecord, error)
}

// ProviderError carries an error message reported by the provider itself,
// as opposed to a transport failure.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Provider, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// SearchOutput holds the records returned for one query.
type SearchOutput struct {
	Query    Query
	Provider string
	Records  []types.BusinessRecord
	Duration time.Duration
}

// Search validates the query and calls the provider exactly once under
// cfg.Timeout. An empty result is a success. On failure the output carries
// no records; there is no retry. Results beyond query.Count are dropped.
func Search(ctx context.Context, query Query, p Provider, cfg types.ProviderConfig, w io.Writer) (SearchOutput, error) {
	out := SearchOutput{Query: query}
	if err := query.Validate(); err != nil {
		return out, err
	}
	if p == nil {
		return out, fmt.Errorf("no provider configured")
	}
	out.Provider = p.Name()

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	records, err := p.Search(ctx, query, cfg)
	out.Duration = time.Since(start)
	if err != nil {
		if httputil.IsTimeout(err) {
			err = fmt.Errorf("no response within %v: %w", timeout, err)
		}
		fmt.Fprintf(w, "warning: provider %s failed after %v: %v\n", p.Name(), out.Duration.Round(time.Millisecond), err)
		return out, fmt.Errorf("searching %s: %w", p.Name(), err)
	}

	if len(records) > query.Count {
		records = records[:query.Count]
	}
	out.Records = records

	fmt.Fprintf(w, "%s: %d businesses for %q in %q (%v)\n",
		p.Name(), len(records), query.Industry, query.Location, out.Duration.Round(time.Millisecond))
	return out, nil
}
