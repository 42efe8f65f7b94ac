package covdoc

import (
	"fmt"
	"strings"
)

// PDFPage is the extracted plain text of one PDF page.
type PDFPage struct {
	Number int
	Text   string
}

// PDFExtractor extracts per-page text from a PDF document.
type PDFExtractor interface {
	ExtractPages(path string) ([]PDFPage, error)
}

// BuildPDFSections joins the pages of a PDF document, splits the combined
// text into titled sections, and infers each section's page range from the
// page offsets its text spans. Text with no heading matches becomes a
// single "General Content" section covering the whole document.
func BuildPDFSections(pages []PDFPage) []Section {
	if len(pages) == 0 {
		return nil
	}

	// Concatenate pages, remembering where each page starts.
	var sb strings.Builder
	starts := make([]int, len(pages))
	for i, page := range pages {
		starts[i] = sb.Len()
		sb.WriteString(page.Text)
		sb.WriteString("\n")
	}
	text := sb.String()

	spans := sectionSpans(text)
	if len(spans) == 0 {
		return []Section{{
			Title:     "General Content",
			Text:      text,
			Tags:      ExtractTags(text, ""),
			PageRange: formatPageRange(pages[0].Number, pages[len(pages)-1].Number),
		}}
	}

	var sections []Section
	for _, span := range spans {
		sectionText := strings.TrimSpace(text[span.start:span.end])
		if len(sectionText) <= minSectionLength {
			continue
		}

		sections = append(sections, Section{
			Title:     span.title,
			Text:      sectionText,
			Tags:      ExtractTags(sectionText, span.title),
			PageRange: formatPageRange(pageAt(pages, starts, span.start), pageAt(pages, starts, span.end-1)),
		})
	}

	return sections
}

// pageAt returns the page number containing the given text offset.
func pageAt(pages []PDFPage, starts []int, offset int) int {
	for i := len(starts) - 1; i >= 0; i-- {
		if offset >= starts[i] {
			return pages[i].Number
		}
	}
	return pages[0].Number
}

func formatPageRange(first, last int) string {
	if first == last {
		return fmt.Sprintf("%d", first)
	}
	return fmt.Sprintf("%d-%d", first, last)
}
