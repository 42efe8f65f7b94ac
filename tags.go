package covdoc

import (
	"regexp"
	"sort"
	"strings"
)

// TagPattern associates a domain tag with the pattern that detects it.
// The same table drives indexing (section/page tag extraction) and querying
// (boost-tag derivation); sharing one table keeps the two vocabularies from
// drifting apart.
type TagPattern struct {
	// Tag is the label attached to matching content.
	Tag string

	// Pattern matches lowercase text mentioning the topic.
	Pattern *regexp.Regexp

	// ConflictProne marks topics known to produce contradictory rules;
	// queries about them fetch extra results so conflicts surface.
	ConflictProne bool
}

// TagTable is the ordered list of domain tag patterns for HOA rules.
// Iteration order does not affect the extracted tag set.
var TagTable = []TagPattern{
	{Tag: "fence", Pattern: regexp.MustCompile(`\b(?:fence|fencing|boundary|perimeter)\b`), ConflictProne: true},
	{Tag: "paint", Pattern: regexp.MustCompile(`\b(?:paint|color|stain|finish)\b`)},
	{Tag: "exterior", Pattern: regexp.MustCompile(`\b(?:exterior|outside|outdoor|external)\b`)},
	{Tag: "interior", Pattern: regexp.MustCompile(`\b(?:interior|inside|indoor|internal)\b`)},
	{Tag: "brown", Pattern: regexp.MustCompile(`\b(?:brown|highlands ranch brown|earth tone)\b`)},
	{Tag: "natural", Pattern: regexp.MustCompile(`\b(?:natural|wood tone|natural wood)\b`)},
	{Tag: "approval", Pattern: regexp.MustCompile(`\b(?:approval|permit|arc|committee|review)\b`)},
	{Tag: "shed", Pattern: regexp.MustCompile(`\b(?:shed|storage|outbuilding|structure)\b`)},
	{Tag: "deck", Pattern: regexp.MustCompile(`\b(?:deck|patio|outdoor living)\b`)},
	{Tag: "landscaping", Pattern: regexp.MustCompile(`\b(?:landscape|garden|plant|tree|lawn)\b`)},
	{Tag: "parking", Pattern: regexp.MustCompile(`\b(?:park|parking|vehicle|rv|trailer)\b`)},
	{Tag: "holiday", Pattern: regexp.MustCompile(`\b(?:holiday|christmas|decoration|light)\b`)},
	{Tag: "required", Pattern: regexp.MustCompile(`\b(?:required|must|mandatory|shall)\b`)},
	{Tag: "prohibited", Pattern: regexp.MustCompile(`\b(?:prohibited|not allowed|forbidden|banned)\b`)},
}

// ExtractTags tests text (and an optional title) against the tag table and
// returns the sorted set of matching tags. The result is deterministic and
// independent of table iteration order.
func ExtractTags(text, title string) []string {
	lower := strings.ToLower(text + " " + title)

	var tags []string
	for _, tp := range TagTable {
		if tp.Pattern.MatchString(lower) {
			tags = append(tags, tp.Tag)
		}
	}

	sort.Strings(tags)
	return tags
}

// QueryTags derives the boost-tag set for a free-text query using the same
// table consumed at indexing time. The second result reports whether the
// query touches a conflict-prone topic.
func QueryTags(query string) (tags []string, conflictProne bool) {
	lower := strings.ToLower(query)

	for _, tp := range TagTable {
		if tp.Pattern.MatchString(lower) {
			tags = append(tags, tp.Tag)
			if tp.ConflictProne {
				conflictProne = true
			}
		}
	}

	sort.Strings(tags)
	return tags, conflictProne
}
