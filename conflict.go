package covdoc

import (
	"regexp"
	"strings"
)

// Conflict represents a plausible contradiction between rule statements in
// a result set. Conflicts are derived at query time and never persisted.
// Detection is heuristic: the contract is to flag likely contradictions for
// human or LLM review, not to resolve them.
type Conflict struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Mutually exclusive rule signals. Each pair that matches the combined
// result text produces one conflict.
var (
	brownFenceRe    = regexp.MustCompile(`highlands?\s*ranch\s*brown|hrca\s*brown`)
	naturalTonesRe  = regexp.MustCompile(`natural\s*wood\s*tones?|earth\s*tones?`)
	exteriorFenceRe = regexp.MustCompile(`exterior\s*fence`)
	interiorFenceRe = regexp.MustCompile(`interior\s*fence`)

	approvalRequiredRe = regexp.MustCompile(`(?:approval\s*required|arc\s*approval|must\s*be\s*approved)`)
	noApprovalRe       = regexp.MustCompile(`(?:no\s*approval\s*required|approval\s*not\s*required)`)

	sizeLimitRe   = regexp.MustCompile(`(?:maximum|max|limit|not\s*exceed)`)
	noSizeLimitRe = regexp.MustCompile(`(?:no\s*size\s*limit|unlimited\s*size)`)
)

// DetectConflicts scans a result set's combined text for known
// contradictory-rule patterns. Multiple independent conflicts may coexist
// in one result set; an empty result is the common case.
func DetectConflicts(results []SearchResult) []Conflict {
	var parts []string
	for _, r := range results {
		parts = append(parts, strings.ToLower(r.Chunk.Content))
	}
	text := strings.Join(parts, " ")

	var conflicts []Conflict

	if brownFenceRe.MatchString(text) && naturalTonesRe.MatchString(text) {
		if exteriorFenceRe.MatchString(text) && interiorFenceRe.MatchString(text) {
			conflicts = append(conflicts, Conflict{
				Category:    "fence-color",
				Description: "Different fence color requirements found - 'Highlands Ranch Brown' and 'natural wood tones'. This likely indicates different rules for interior vs exterior fences. Please specify fence location for accurate guidance.",
			})
		} else {
			conflicts = append(conflicts, Conflict{
				Category:    "fence-color",
				Description: "Some sections reference 'natural wood tones', while others require 'Highlands Ranch Brown'. This may indicate different rules for interior vs exterior fences.",
			})
		}
	}

	if approvalRequiredRe.MatchString(text) && noApprovalRe.MatchString(text) {
		conflicts = append(conflicts, Conflict{
			Category:    "approval",
			Description: "Documents contain conflicting approval requirements. Please review specific circumstances and contact the ARC for clarification.",
		})
	}

	if sizeLimitRe.MatchString(text) && noSizeLimitRe.MatchString(text) {
		conflicts = append(conflicts, Conflict{
			Category:    "size-limit",
			Description: "Mixed information about size limitations. Different rules may apply to different areas or structure types.",
		})
	}

	return conflicts
}
