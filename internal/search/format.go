// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"io"
	"strings"
)

// FormatTable writes records as a human-readable table to w.
func FormatTable(out SearchOutput, w io.Writer) {
	if len(out.Records) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-40s  %-40s  %s\n", "#", "Business Name", "Website", "Phone")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, r := range out.Records {
		fmt.Fprintf(w, "%-4d  %-40s  %-40s  %s\n",
			i+1, truncate(r.Name, 40), truncate(r.Website, 40), r.Phone)
	}

	fmt.Fprintf(w, "\n%d results", len(out.Records))
	if out.Provider != "" {
		fmt.Fprintf(w, " from %s", out.Provider)
	}
	fmt.Fprintln(w)
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
