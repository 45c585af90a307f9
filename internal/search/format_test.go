// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pdiddy/smb-search/pkg/types"
)

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(SearchOutput{}, &buf)
	if got := buf.String(); got != "No results found.\n" {
		t.Errorf("FormatTable(empty) = %q", got)
	}
}

func TestFormatTableRows(t *testing.T) {
	out := SearchOutput{
		Provider: "fake",
		Records: []types.BusinessRecord{
			{Name: "Emerald City Dental", Website: "https://emeraldcitydental.com", Phone: "(206) 555-0101"},
			{Name: strings.Repeat("Long Name ", 10)},
		},
	}
	var buf bytes.Buffer
	FormatTable(out, &buf)
	got := buf.String()

	for _, want := range []string{"Business Name", "Emerald City Dental", "(206) 555-0101", "...", "2 results from fake"} {
		if !strings.Contains(got, want) {
			t.Errorf("table missing %q:\n%s", want, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"café société", 8, "café ..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
