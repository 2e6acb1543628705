package suggest

import (
	"strings"
	"unicode"
)

// Distance computes the Levenshtein (edit) distance between two strings.
//
// Time complexity: O(len(a) * len(b))
// Space complexity: O(min(len(a), len(b))).
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Similarity is 1 - distance/maxLen over the folded forms of a and b:
// 1.0 for names that only differ in case or separators, 0.0 for nothing in common.
func Similarity(a, b string) float64 {
	fa, fb := Fold(a), Fold(b)
	if len(fa) == 0 && len(fb) == 0 {
		return 1.0
	}

	return 1.0 - float64(Distance(fa, fb))/float64(max(len(fa), len(fb)))
}

// Fold lowercases s and drops '_', '-' and ' ' so that "hit_points",
// "Hit Points" and "HitPoints" compare equal.
func Fold(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
