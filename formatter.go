package covdoc

import (
	"fmt"
	"strings"
)

// FormatResults formats ranked search results and detected conflicts for
// display or LLM context. Results are separated by rules; conflict warnings
// are appended after the results.
func FormatResults(results []SearchResult, conflicts []Conflict) string {
	if len(results) == 0 {
		return "No relevant information found in the association documents."
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		var sb strings.Builder

		switch {
		case r.Chunk.PDFPage > 0:
			fmt.Fprintf(&sb, "Source: Residential Improvement Guidelines (Page %d)", r.Chunk.PDFPage)
		case r.Chunk.SourceURL != "":
			fmt.Fprintf(&sb, "Source: %s", r.Chunk.SourceURL)
		default:
			sb.WriteString("Source: Association Documents")
		}

		if r.Chunk.SectionTitle != "" {
			fmt.Fprintf(&sb, "\nSection: %s", r.Chunk.SectionTitle)
		}
		if len(r.Chunk.Tags) > 0 {
			fmt.Fprintf(&sb, "\nTags: %s", strings.Join(r.Chunk.Tags, ", "))
		}
		if r.TagBoost > 0 {
			fmt.Fprintf(&sb, " (relevance boosted: +%.0f%%)", r.TagBoost*100)
		}

		fmt.Fprintf(&sb, "\n\n%s", r.Chunk.Content)
		parts = append(parts, sb.String())
	}

	out := strings.Join(parts, "\n\n---\n\n")

	if len(conflicts) > 0 {
		warnings := make([]string, 0, len(conflicts))
		for _, c := range conflicts {
			warnings = append(warnings, "POTENTIAL CONFLICT DETECTED: "+c.Description)
		}
		out += "\n\n" + strings.Repeat("=", 50) + "\n\n" + strings.Join(warnings, "\n\n")
	}

	return out
}
