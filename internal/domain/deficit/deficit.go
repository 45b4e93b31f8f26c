// Package deficit computes how many players the roster is short per position.
package deficit

import (
	"strings"

	"github.com/okian/scout/internal/domain/model"
)

// PositionDeficit maps a position tag to its non-negative shortfall.
type PositionDeficit map[string]int

// SplitTags splits a Position cell such as "D (C), M (C)" into its tags.
// Blank tags are dropped; order is preserved.
func SplitTags(field string) []string {
	parts := strings.Split(field, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// Count returns the roster headcount per position tag. A member listing three
// tags counts once in each of the three buckets.
func Count(squad []model.SquadMember) map[string]int {
	counts := make(map[string]int)
	for _, m := range squad {
		for _, tag := range m.Positions {
			counts[tag]++
		}
	}
	return counts
}

// Compute returns max(required-current, 0) for every position in requirements.
// Positions without a requirement are not reported.
func Compute(squad []model.SquadMember, requirements map[string]int) PositionDeficit {
	counts := Count(squad)
	out := make(PositionDeficit, len(requirements))
	for tag, required := range requirements {
		out[tag] = max(required-counts[tag], 0)
	}
	return out
}

// Fills reports whether any of positions has an open deficit.
func Fills(positions []string, deficits PositionDeficit) bool {
	for _, tag := range positions {
		if deficits[strings.TrimSpace(tag)] > 0 {
			return true
		}
	}
	return false
}

// Total sums every shortfall.
func (d PositionDeficit) Total() int {
	n := 0
	for _, v := range d {
		n += v
	}
	return n
}
