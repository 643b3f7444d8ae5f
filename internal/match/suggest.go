package match

import (
	"fmt"
	"slices"
	"strings"
)

// MinScore is the similarity below which Closest reports no suggestion.
const MinScore = 0.5

// Closest returns the candidate most similar to input, compared
// case-insensitively and ignoring surrounding spaces and a leading dot, so
// "JSON" suggests "json". Ties go to the earlier candidate. ok is false when
// input already is a candidate or nothing scores at least MinScore.
func Closest(input string, candidates []string) (best string, ok bool) {
	if input == "" || slices.Contains(candidates, input) {
		return "", false
	}

	in := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(input), "."))
	bestScore := MinScore

	for _, c := range candidates {
		lc := strings.ToLower(c)

		if score := LevenshteinNormalized(in, lc); score >= bestScore && (!ok || score > bestScore) {
			best, bestScore, ok = c, score, true
		}
	}

	return best, ok
}

// Hint renders a "did you mean" hint for input, or "" when Closest finds
// nothing. format receives the suggestion, e.g. "did you mean -format=%s?".
func Hint(input string, candidates []string, format string) string {
	best, ok := Closest(input, candidates)
	if !ok {
		return ""
	}

	return fmt.Sprintf(format, best)
}
