// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/smb-search/internal/export"
	"github.com/pdiddy/smb-search/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Query the business data provider and print or export the results",
	Long: `Search sends one query (industry, location, count) to the configured
business-data provider and prints the returned businesses as a table, or
writes them as CSV, JSON or YAML. A failed provider call is reported and
not retried.`,
	Example: `  smb-search search --industry dentists --location "Seattle, WA" --count 10
  smb-search search --industry plumbers --location "Austin, TX" --out plumbers.csv`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("industry", "", "industry or keyword, e.g. dentists")
	searchCmd.Flags().String("location", "", `location in "City, ST" form`)
	searchCmd.Flags().Int("count", search.DefaultCount, fmt.Sprintf("number of businesses to find (%d-%d)", search.MinCount, search.MaxCount))
	searchCmd.Flags().String("format", "table", "output format: table, csv, json or yaml")
	searchCmd.Flags().String("out", "", "write results to this file instead of stdout")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	industry, _ := cmd.Flags().GetString("industry")
	location, _ := cmd.Flags().GetString("location")
	count, _ := cmd.Flags().GetInt("count")
	outPath, _ := cmd.Flags().GetString("out")

	format, _ := cmd.Flags().GetString("format")
	if outPath != "" && !cmd.Flags().Changed("format") {
		format = formatFromPath(outPath)
	}

	query := search.Query{Industry: industry, Location: location, Count: count}
	if err := query.Validate(); err != nil {
		return err
	}

	cfg, err := loadAppConfig(viper.GetViper(), loadedSecrets)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: providerTimeout(cfg.Provider)}
	provider, err := search.NewProvider(cfg.Provider, client)
	if err != nil {
		return err
	}

	out, err := search.Search(cmd.Context(), query, provider, cfg.Provider, os.Stderr)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	if err := writeResults(w, format, out); err != nil {
		return err
	}
	if outPath != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d businesses to %s\n", len(out.Records), outPath)
	}
	return nil
}

// writeResults renders out in the named format; "table" is the plain-text view.
func writeResults(w io.Writer, format string, out search.SearchOutput) error {
	if strings.EqualFold(strings.TrimSpace(format), "table") {
		search.FormatTable(out, w)
		return nil
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	return export.Write(w, f, out.Records)
}

// formatFromPath picks an export format from the file extension,
// defaulting to CSV.
func formatFromPath(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if f, err := export.ParseFormat(ext); err == nil {
		return string(f)
	}
	return string(export.FormatCSV)
}
