// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/smb-search/internal/httputil"
	"github.com/pdiddy/smb-search/pkg/types"
)

const sampleAggregatorJSON = `{
  "results": [
    {"name": "Emerald City Dental", "website": "https://emeraldcitydental.com", "phone": "(206) 555-0101"},
    {"name": "  Pike Street Smiles ", "website": null, "phone": "(206) 555-0102"},
    {"name": "Queen Anne Family Dentistry", "website": "https://qafd.example", "phone": null},
    {"name": "Ballard Dental Arts"}
  ]
}`

func aggregatorTestServer(statusCode int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}

func aggregatorCfg(baseURL string) types.ProviderConfig {
	return types.ProviderConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "smb-search-test/1.0"},
		Name:       ProviderAggregator,
		BaseURL:    baseURL,
		APIKey:     "agg-key",
	}
}

func TestAggregatorBackendSearch(t *testing.T) {
	ts := aggregatorTestServer(http.StatusOK, sampleAggregatorJSON)
	defer ts.Close()

	b := &AggregatorBackend{Client: ts.Client()}
	records, err := b.Search(context.Background(), Query{Industry: "dentists", Location: "Seattle, WA", Count: 10}, aggregatorCfg(ts.URL))
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, types.BusinessRecord{
		Name:    "Emerald City Dental",
		Website: "https://emeraldcitydental.com",
		Phone:   "(206) 555-0101",
	}, records[0])

	// Null fields decode to empty strings and names are trimmed.
	assert.Equal(t, "Pike Street Smiles", records[1].Name)
	assert.Equal(t, "", records[1].Website)
	assert.Equal(t, "", records[2].Phone)
	assert.Equal(t, types.BusinessRecord{Name: "Ballard Dental Arts"}, records[3])
}

func TestAggregatorBackendRequestShape(t *testing.T) {
	var got *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		fmt.Fprint(w, `{"results": []}`)
	}))
	defer ts.Close()

	b := &AggregatorBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(),
		Query{Industry: "dentists & orthodontists", Location: "Seattle, WA", Count: 25},
		aggregatorCfg(ts.URL+"/"))
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, aggregatorPath, got.URL.Path)
	assert.Equal(t, "dentists & orthodontists", got.URL.Query().Get("industry"))
	assert.Equal(t, "Seattle, WA", got.URL.Query().Get("location"))
	assert.Equal(t, "25", got.URL.Query().Get("limit"))
	assert.Equal(t, "Bearer agg-key", got.Header.Get("Authorization"))
	assert.Equal(t, "smb-search-test/1.0", got.Header.Get("User-Agent"))
}

func TestAggregatorBackendEmptyResults(t *testing.T) {
	ts := aggregatorTestServer(http.StatusOK, `{"results": []}`)
	defer ts.Close()

	b := &AggregatorBackend{Client: ts.Client()}
	records, err := b.Search(context.Background(), Query{Count: 5}, aggregatorCfg(ts.URL))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAggregatorBackendErrorField(t *testing.T) {
	ts := aggregatorTestServer(http.StatusOK, `{"results": [], "error": "location not recognised"}`)
	defer ts.Close()

	b := &AggregatorBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), Query{Count: 5}, aggregatorCfg(ts.URL))

	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "location not recognised", pe.Message)
	assert.Equal(t, 0, pe.StatusCode)
}

func TestAggregatorBackendHTTPErrorWithJSONBody(t *testing.T) {
	ts := aggregatorTestServer(http.StatusUnauthorized, `{"error": "invalid API key"}`)
	defer ts.Close()

	b := &AggregatorBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), Query{Count: 5}, aggregatorCfg(ts.URL))

	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusUnauthorized, pe.StatusCode)
	assert.Equal(t, "invalid API key", pe.Message)
}

func TestAggregatorBackendHTTPErrorPlainBody(t *testing.T) {
	ts := aggregatorTestServer(http.StatusBadGateway, `upstream unavailable`)
	defer ts.Close()

	b := &AggregatorBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), Query{Count: 5}, aggregatorCfg(ts.URL))

	var se *httputil.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Contains(t, err.Error(), "upstream unavailable")
}

func TestAggregatorBackendMalformedJSON(t *testing.T) {
	ts := aggregatorTestServer(http.StatusOK, `{"results": [`)
	defer ts.Close()

	b := &AggregatorBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), Query{Count: 5}, aggregatorCfg(ts.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing aggregator response")
}

func TestAggregatorBackendMissingKey(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	cfg := aggregatorCfg(ts.URL)
	cfg.APIKey = ""

	b := &AggregatorBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), Query{Count: 5}, cfg)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.False(t, called, "no request without a key")
}

func TestAggregatorBackendNetworkError(t *testing.T) {
	ts := aggregatorTestServer(http.StatusOK, sampleAggregatorJSON)
	url := ts.URL
	ts.Close()

	b := &AggregatorBackend{Client: http.DefaultClient}
	_, err := b.Search(context.Background(), Query{Count: 5}, aggregatorCfg(url))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aggregator API request")
}
