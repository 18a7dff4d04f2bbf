package match

import (
	"strings"
)

// Tier identifies which strategy paired a target field with a source field.
type Tier int

const (
	TierNone Tier = iota
	TierExact
	TierCaseInsensitive
	TierSubstring
	TierFuzzy
)

// String returns a short name for the tier.
func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierCaseInsensitive:
		return "case-insensitive"
	case TierSubstring:
		return "substring"
	case TierFuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// Match is the outcome of FindSource.
type Match struct {
	// Name of the matched source field; empty when Tier is TierNone.
	Name string
	Tier Tier
	// Score is 1 for the non-fuzzy tiers and the similarity for TierFuzzy.
	Score float64
}

// Found reports whether a source field was matched.
func (m Match) Found() bool {
	return m.Tier != TierNone
}

// FindSource looks for the source field corresponding to target, trying in
// order: exact name, case-insensitive name, case-insensitive substring in
// either direction. The first candidate in sourceNames order wins within a
// tier. When fuzzyThreshold is positive a fourth tier picks the most similar
// remaining name scoring at least the threshold (earliest on ties).
func FindSource(target string, sourceNames []string, fuzzyThreshold float64) Match {
	for _, name := range sourceNames {
		if name == target {
			return Match{Name: name, Tier: TierExact, Score: 1}
		}
	}

	for _, name := range sourceNames {
		if strings.EqualFold(name, target) {
			return Match{Name: name, Tier: TierCaseInsensitive, Score: 1}
		}
	}

	lowerTarget := strings.ToLower(target)
	for _, name := range sourceNames {
		lowerName := strings.ToLower(name)
		if lowerName == "" || lowerTarget == "" {
			continue
		}

		if strings.Contains(lowerName, lowerTarget) || strings.Contains(lowerTarget, lowerName) {
			return Match{Name: name, Tier: TierSubstring, Score: 1}
		}
	}

	if fuzzyThreshold <= 0 {
		return Match{}
	}

	best := Match{}
	for _, name := range sourceNames {
		score := Similarity(name, target)
		if score >= fuzzyThreshold && score > best.Score {
			best = Match{Name: name, Tier: TierFuzzy, Score: score}
		}
	}

	return best
}
