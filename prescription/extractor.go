// Package prescription turns raw prescription text into medicine order
// candidates and resolves them against the catalog. Extraction and matching
// are pure functions of their inputs; nothing here touches stock.
package prescription

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/openrx/pharmacy-api/catalog"
)

// Candidate is one (name, quantity) pair extracted from prescription text.
// Resolved is nil until matching, and stays nil when the catalog has no
// entry for the name; that is a normal classification, not an error.
type Candidate struct {
	RawName  string            `json:"rawName"`
	Quantity int               `json:"quantity"`
	Resolved *catalog.Medicine `json:"resolved,omitempty"`
}

// namePatterns pair a candidate name token with a strength or dosage-count
// token. Applied in order to every line; any of them can nominate a name.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\w+)\s+(\d+(?:\.\d+)?)\s*mg`),
	regexp.MustCompile(`(\w+)\s+(\d+)\s*tablets?`),
	regexp.MustCompile(`(\w+)\s+(\d+)\s*capsules?`),
	regexp.MustCompile(`(\w+)\s+.*?(\d+)\s*(?:times?|daily|twice|once)`),
}

// quantityPatterns capture an explicit unit count on a line, tried in order.
// Strength figures ("500mg") are deliberately not counts: "amoxicillin 500mg
// - take 2 tablets daily" prescribes two units, not five hundred.
var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`take\s+(\d+)`),
	regexp.MustCompile(`(\d+)\s*tablets?`),
	regexp.MustCompile(`(\d+)\s*capsules?`),
	regexp.MustCompile(`(\d+)\s*(?:times?|daily|twice|once|x)`),
}

// stopWords are tokens the name patterns can latch onto that are never
// medicine names.
var stopWords = map[string]bool{
	"take":         true,
	"tablet":       true,
	"tablets":      true,
	"capsule":      true,
	"capsules":     true,
	"daily":        true,
	"times":        true,
	"patient":      true,
	"prescription": true,
}

// ExtractCandidates scans prescription text for medicine order candidates.
// Each line is matched against every name pattern; the first occurrence of a
// lowercase name wins and later matches for the same name are dropped.
// Output order follows first appearance in the text. Empty text or text with
// no matches yields an empty result.
func ExtractCandidates(text string) []Candidate {
	var candidates []Candidate
	seen := make(map[string]bool)

	for _, line := range strings.Split(strings.ToLower(text), "\n") {
		quantity := lineQuantity(line)

		for _, pattern := range namePatterns {
			for _, match := range pattern.FindAllStringSubmatch(line, -1) {
				name := match[1]
				if stopWords[name] || seen[name] {
					continue
				}
				seen[name] = true
				candidates = append(candidates, Candidate{RawName: name, Quantity: quantity})
			}
		}
	}

	return candidates
}

// lineQuantity returns the first explicit unit count on the line, clamped to
// a minimum of one.
func lineQuantity(line string) int {
	for _, pattern := range quantityPatterns {
		match := pattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err != nil || n < 1 {
			return 1
		}
		return n
	}
	return 1
}
