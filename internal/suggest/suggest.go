package suggest

import (
	"cmp"
	"slices"
)

// DefaultThreshold is the minimum Similarity for a candidate to be suggested.
const DefaultThreshold = 0.6

// Closest returns up to limit candidates whose Similarity to name is at least
// threshold, best first. Ties keep candidate order. The name itself is never
// suggested.
func Closest(name string, candidates []string, threshold float64, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	var hits []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		if s := Similarity(name, c); s >= threshold {
			hits = append(hits, scored{name: c, score: s})
		}
	}

	slices.SortStableFunc(hits, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]string, 0, min(limit, len(hits)))
	for _, h := range hits {
		if len(out) == limit {
			break
		}

		if !slices.Contains(out, h.name) {
			out = append(out, h.name)
		}
	}

	return out
}
