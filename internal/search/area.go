package search

import (
	"regexp"
	"strings"
)

var (
	areaPrefix     = regexp.MustCompile(`(?i)^(sector|phase)\s+`)
	areaSeparators = regexp.MustCompile(`[-\s]+`)
)

// areaGap is placed between every character of a normalized area token.
const areaGap = `[-\s]*`

// NormalizeArea drops a leading "Sector " or "Phase " and removes hyphens and
// whitespace, so "Sector F-10", "F 10" and "f10" all reduce to the same token
// up to case. It is idempotent.
func NormalizeArea(input string) string {
	s := areaPrefix.ReplaceAllString(strings.TrimSpace(input), "")
	return areaSeparators.ReplaceAllString(s, "")
}

// AreaPattern builds the case-insensitive pattern used against location.area.
// ok is false when the input normalizes to nothing; callers skip the clause
// rather than match every listing.
func AreaPattern(input string) (pattern string, ok bool) {
	token := NormalizeArea(input)
	if token == "" {
		return "", false
	}

	parts := make([]string, 0, len(token))
	for _, r := range token {
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}
	return strings.Join(parts, areaGap), true
}
