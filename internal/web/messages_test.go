// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/pdiddy/smb-search/internal/httputil"
	"github.com/pdiddy/smb-search/internal/search"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid count", fmt.Errorf("%w: got 150", search.ErrInvalidCount), "Number of businesses must be a whole number between 1 and 100."},
		{"missing key", fmt.Errorf("searching places: %w", search.ErrMissingAPIKey), "The business data provider is not configured: no API key is set."},
		{"timeout", fmt.Errorf("no response within 20s: %w", context.DeadlineExceeded), "The business data provider did not respond in time. Please try again."},
		{"cancelled", context.Canceled, "The search was cancelled."},
		{"provider error", fmt.Errorf("wrap: %w", &search.ProviderError{Provider: "aggregator", Message: "bad location"}), "The business data provider reported an error: bad location"},
		{"status error", fmt.Errorf("wrap: %w", &httputil.StatusError{StatusCode: 503}), "The business data provider returned an error (HTTP 503)."},
		{"other", errors.New("dial tcp: connection refused"), "An error occurred: dial tcp: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userMessage(tt.err); got != tt.want {
				t.Errorf("userMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
