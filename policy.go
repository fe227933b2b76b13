package regrag

import (
	"regexp"
	"strings"
)

// CategoryAll matches every policy category in SelectRelevantURLs.
const CategoryAll = "all"

// DefaultMaxRelevantURLs bounds the fallback fetch to a small, cheap set.
const DefaultMaxRelevantURLs = 3

// Sentinel values in the free-text Sources field that mean "no usable
// source". Records carrying them contribute no URLs.
const (
	SourcesNoneFound = "None found"
	SourcesSeeNotes  = "See notes below"
)

// PolicyRecord is one structured policy entry for a jurisdiction, supplied
// by an external collaborator. Sources is free text that may embed URLs.
type PolicyRecord struct {
	Category   string `json:"category"`
	PolicyName string `json:"policyName"`
	Summary    string `json:"summary,omitempty"`
	Sources    string `json:"sources,omitempty"`
	Dates      string `json:"dates,omitempty"`
}

// JurisdictionPolicies groups the policy records of one jurisdiction.
type JurisdictionPolicies struct {
	Policies []PolicyRecord `json:"policies"`
}

// PolicySet maps a jurisdiction key to its policy records.
type PolicySet map[string]JurisdictionPolicies

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// trailing punctuation commonly glued to URLs in free text
var trailingPunct = regexp.MustCompile(`[.,;:)]$`)

// SelectRelevantURLs extracts well-formed URLs from the Sources fields of a
// jurisdiction's policy records. Records whose category does not match are
// skipped unless category is CategoryAll; records whose Sources is empty or
// a sentinel value contribute nothing. Extracted URLs are stripped of
// trailing punctuation, deduplicated in first-seen order, and capped at max
// (DefaultMaxRelevantURLs when max <= 0).
func SelectRelevantURLs(jurisdiction, category string, policies PolicySet, max int) []string {
	if max <= 0 {
		max = DefaultMaxRelevantURLs
	}

	data, ok := policies[jurisdiction]
	if !ok {
		return nil
	}

	seen := make(map[string]struct{})
	var urls []string

	for _, p := range data.Policies {
		if category != CategoryAll && p.Category != category {
			continue
		}
		src := strings.TrimSpace(p.Sources)
		if src == "" || src == SourcesNoneFound || src == SourcesSeeNotes {
			continue
		}

		for _, match := range urlPattern.FindAllString(src, -1) {
			u := trailingPunct.ReplaceAllString(match, "")
			if u == "" {
				continue
			}
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			urls = append(urls, u)
		}
	}

	if len(urls) > max {
		urls = urls[:max]
	}
	return urls
}
