// Package ranking orders scored candidates into the final shortlist.
//
// Ordering: score DESC, then name ASC, then input order.
package ranking

import (
	"math"
	"sort"

	"github.com/okian/scout/internal/domain/model"
)

// less returns true if a should appear before b in the shortlist.
func less(a, b *model.ScoredCandidate) bool {
	as, bs := sortable(a.Score), sortable(b.Score)
	if as != bs {
		return as > bs // higher score ranks earlier
	}
	return a.Name < b.Name
}

// sortable sinks NaN below every real score so the order stays total.
func sortable(x float64) float64 {
	if math.IsNaN(x) {
		return math.Inf(-1)
	}
	return x
}

// Rank returns a new, ordered slice with Rank set from 1. The input is not
// modified.
func Rank(scored []model.ScoredCandidate) []model.ScoredCandidate {
	out := make([]model.ScoredCandidate, len(scored))
	copy(out, scored)

	sort.SliceStable(out, func(i, j int) bool {
		return less(&out[i], &out[j])
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Top returns at most n leading entries of an already ranked slice.
func Top(ranked []model.ScoredCandidate, n int) []model.ScoredCandidate {
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
