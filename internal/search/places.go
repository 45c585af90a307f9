// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/smb-search/internal/httputil"
	"github.com/pdiddy/smb-search/pkg/types"
)

// placesSearchURL is the Places API (New) Text Search endpoint. Declared as
// a var so tests can substitute an httptest server.
var placesSearchURL = "https://places.googleapis.com/v1/places:searchText"

// placesFieldMask limits the response to the three fields a BusinessRecord holds.
const placesFieldMask = "places.displayName,places.websiteUri,places.nationalPhoneNumber"

// placesMaxPageSize is the largest page Text Search returns in one call.
const placesMaxPageSize = 20

// PlacesBackend queries the Google Places Text Search API. One call returns
// at most 20 places, so counts above 20 yield at most 20 records.
type PlacesBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *PlacesBackend) Name() string { return ProviderPlaces }

// Search issues one Text Search request for "<industry> in <location>".
func (b *PlacesBackend) Search(ctx context.Context, query Query, cfg types.ProviderConfig) ([]types.BusinessRecord, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	endpoint := placesSearchURL
	if cfg.BaseURL != "" {
		endpoint = cfg.BaseURL
	}

	pageSize := query.Count
	if pageSize > placesMaxPageSize {
		pageSize = placesMaxPageSize
	}

	body, err := json.Marshal(placesRequest{
		TextQuery: buildPlacesQuery(query),
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding Places request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", cfg.APIKey)
	req.Header.Set("X-Goog-FieldMask", placesFieldMask)
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := httputil.Do(ctx, b.Client, req)
	if err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) {
			var pe placesErrorResponse
			if json.Unmarshal([]byte(se.Body), &pe) == nil && pe.Error.Message != "" {
				return nil, &ProviderError{Provider: ProviderPlaces, StatusCode: se.StatusCode, Message: pe.Error.Message}
			}
			return nil, fmt.Errorf("Places API returned %w", se)
		}
		return nil, fmt.Errorf("Places API request: %w", err)
	}
	defer resp.Body.Close()

	var pr placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("parsing Places response: %w", err)
	}

	records := make([]types.BusinessRecord, 0, len(pr.Places))
	for _, p := range pr.Places {
		records = append(records, types.BusinessRecord{
			Name:    p.DisplayName.Text,
			Website: p.WebsiteURI,
			Phone:   p.NationalPhoneNumber,
		})
	}
	return records, nil
}

// buildPlacesQuery joins industry and location the way people type a maps
// search. Either part may be empty.
func buildPlacesQuery(q Query) string {
	industry := strings.TrimSpace(q.Industry)
	location := strings.TrimSpace(q.Location)
	switch {
	case industry == "":
		return location
	case location == "":
		return industry
	default:
		return industry + " in " + location
	}
}

// Places API JSON structures.
type placesRequest struct {
	TextQuery string `json:"textQuery"`
	PageSize  int    `json:"pageSize"`
}

type placesResponse struct {
	Places []placesPlace `json:"places"`
}

type placesPlace struct {
	DisplayName         placesLocalizedText `json:"displayName"`
	WebsiteURI          string              `json:"websiteUri"`
	NationalPhoneNumber string              `json:"nationalPhoneNumber"`
}

type placesLocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode"`
}

type placesErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
