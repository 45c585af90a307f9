// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/smb-search/internal/httputil"
	"github.com/pdiddy/smb-search/internal/search"
)

// userMessage turns a search error into the single line shown on the page.
func userMessage(err error) string {
	var pe *search.ProviderError
	var se *httputil.StatusError
	switch {
	case errors.Is(err, search.ErrInvalidCount):
		return fmt.Sprintf("Number of businesses must be a whole number between %d and %d.", search.MinCount, search.MaxCount)
	case errors.Is(err, search.ErrMissingAPIKey):
		return "The business data provider is not configured: no API key is set."
	case httputil.IsTimeout(err):
		return "The business data provider did not respond in time. Please try again."
	case errors.Is(err, context.Canceled):
		return "The search was cancelled."
	case errors.As(err, &pe):
		return "The business data provider reported an error: " + pe.Message
	case errors.As(err, &se):
		return fmt.Sprintf("The business data provider returned an error (HTTP %d).", se.StatusCode)
	default:
		return "An error occurred: " + err.Error()
	}
}
