// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serialises business records for download: CSV for the web
// front end, and CSV, JSON or YAML for the command line.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/smb-search/pkg/types"
)

// CSVFilename is the download name offered for CSV exports.
const CSVFilename = "business_search_data.csv"

// CSVHeader is the fixed first row of every CSV export.
var CSVHeader = []string{"name", "website", "phone"}

// Format names an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts a format name case-insensitively; "yml" is YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv, json or yaml)", s)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Write encodes records to w in format f.
func Write(w io.Writer, f Format, records []types.BusinessRecord) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatJSON:
		return WriteJSON(w, records)
	case FormatYAML:
		return WriteYAML(w, records)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// WriteCSV writes the header row and one row per record in input order.
// Empty website or phone values become empty cells. Quoting follows
// RFC 4180 with LF line endings, so the same records always produce the
// same bytes. A nil or empty slice yields the header alone.
func WriteCSV(w io.Writer, records []types.BusinessRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write([]string{r.Name, r.Website, r.Phone}); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// WriteJSON writes records as an indented JSON array. An empty list is
// written as [] rather than null.
func WriteJSON(w io.Writer, records []types.BusinessRecord) error {
	if records == nil {
		records = []types.BusinessRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteYAML writes records as a YAML list.
func WriteYAML(w io.Writer, records []types.BusinessRecord) error {
	if records == nil {
		records = []types.BusinessRecord{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}
