package covdoc

import (
	"regexp"
	"strings"
)

// minSectionLength is the minimum length for a heading-delimited section to
// be kept. The fallback single section is exempt.
const minSectionLength = 100

// Section represents a titled span of a page's or document's text together
// with its derived domain tags. Sections are immutable once computed.
type Section struct {
	Title     string   `json:"title"`
	Text      string   `json:"text"`
	Tags      []string `json:"tags"`
	PageRange string   `json:"pageRange,omitempty"`
}

// headingRe matches section markers common in HOA documents: explicit
// "Section N.N" / "Article N" numbering, bare "N.N" numbering, or a
// capitalized phrase ending in Standards/Guidelines/Requirements/Rules.
var headingRe = regexp.MustCompile(`(?i)(?:Section\s+[\d.]+|Article\s+[\d.]+|\d+\.\d+|\b[A-Z][^.]*(?:Standards?|Guidelines?|Requirements?|Rules?)\b)`)

// sectionSpan is a heading-delimited region of text.
type sectionSpan struct {
	title string
	start int
	end   int
}

// sectionSpans locates heading-delimited regions. Each heading match opens
// a span running until the next match or the end of the text.
func sectionSpans(text string) []sectionSpan {
	matches := headingRe.FindAllStringIndex(text, -1)

	spans := make([]sectionSpan, 0, len(matches))
	for i, match := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		spans = append(spans, sectionSpan{
			title: strings.TrimSpace(text[match[0]:match[1]]),
			start: match[0],
			end:   end,
		})
	}
	return spans
}

// SplitSections splits text into titled sections by heading heuristics.
// Sections shorter than the minimum length are dropped. Text with no
// heading matches becomes a single "General Content" section.
func SplitSections(text string) []Section {
	spans := sectionSpans(text)

	if len(spans) == 0 {
		return []Section{{
			Title: "General Content",
			Text:  text,
			Tags:  ExtractTags(text, ""),
		}}
	}

	var sections []Section
	for _, span := range spans {
		sectionText := strings.TrimSpace(text[span.start:span.end])
		if len(sectionText) <= minSectionLength {
			continue
		}

		sections = append(sections, Section{
			Title: span.title,
			Text:  sectionText,
			Tags:  ExtractTags(sectionText, span.title),
		})
	}

	return sections
}
