// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/smb-search/internal/httputil"
	"github.com/pdiddy/smb-search/pkg/types"
)

// aggregatorPath is appended to the configured base URL.
const aggregatorPath = "/v1/businesses"

// AggregatorBackend queries a business-data aggregation API that speaks a
// plain JSON listing protocol:
//
//	GET {base}/v1/businesses?industry=..&location=..&limit=..
//	Authorization: Bearer <key>
//
//	{"results": [{"name": "...", "website": "...", "phone": "..."}], "error": ""}
type AggregatorBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *AggregatorBackend) Name() string { return ProviderAggregator }

// Search issues one listing request and maps the rows to BusinessRecords.
func (b *AggregatorBackend) Search(ctx context.Context, query Query, cfg types.ProviderConfig) ([]types.BusinessRecord, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("aggregator base URL is empty")
	}

	params := url.Values{
		"industry": {query.Industry},
		"location": {query.Location},
		"limit":    {strconv.Itoa(query.Count)},
	}
	reqURL := strings.TrimRight(cfg.BaseURL, "/") + aggregatorPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := httputil.Do(ctx, b.Client, req)
	if err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) {
			return nil, aggregatorStatusError(se)
		}
		return nil, fmt.Errorf("aggregator API request: %w", err)
	}
	defer resp.Body.Close()

	var ar aggregatorResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("parsing aggregator response: %w", err)
	}
	if ar.Error != "" {
		return nil, &ProviderError{Provider: ProviderAggregator, Message: ar.Error}
	}

	records := make([]types.BusinessRecord, 0, len(ar.Results))
	for _, r := range ar.Results {
		records = append(records, types.BusinessRecord{
			Name:    strings.TrimSpace(r.Name),
			Website: strings.TrimSpace(deref(r.Website)),
			Phone:   strings.TrimSpace(deref(r.Phone)),
		})
	}
	return records, nil
}

// aggregatorStatusError prefers the JSON error message from the body and
// falls back to the raw status error.
func aggregatorStatusError(se *httputil.StatusError) error {
	var body aggregatorResponse
	if err := json.Unmarshal([]byte(se.Body), &body); err == nil && body.Error != "" {
		return &ProviderError{Provider: ProviderAggregator, StatusCode: se.StatusCode, Message: body.Error}
	}
	return fmt.Errorf("aggregator API returned %w", se)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type aggregatorResponse struct {
	Results []aggregatorBusiness `json:"results"`
	Error   string               `json:"error"`
}

// Website and Phone are pointers because the API sends null for unknown values.
type aggregatorBusiness struct {
	Name    string  `json:"name"`
	Website *string `json:"website"`
	Phone   *string `json:"phone"`
}
