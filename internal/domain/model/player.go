// Package model contains domain models passed between layers.
package model

import "math"

// MaxAbility is the top of the role-ability rating scale.
const MaxAbility = 20.0

// Candidate is a player being evaluated for acquisition.
type Candidate struct {
	Name          string
	Age           int
	Positions     []string           // position tags, e.g. "D (C)", "M/AM (R)"
	TransferValue string             // raw price expression as found in the dataset
	Category      Category           // player type the candidate was shortlisted as
	Abilities     map[string]float64 // role-ability code -> rating; absent key means no data

	// Fields holds the raw input row so the output keeps every source column.
	Fields []string
}

// BestAbility returns the highest rating across the present role abilities.
// The second result is false when the candidate has no ability data at all.
func (c Candidate) BestAbility() (float64, bool) {
	return bestAbility(c.Abilities)
}

// SquadMember is a player already on the roster.
type SquadMember struct {
	Name      string
	Age       int
	Positions []string
	Abilities map[string]float64
	Fields    []string
}

// BestAbility returns the highest rating across the present role abilities.
func (m SquadMember) BestAbility() (float64, bool) {
	return bestAbility(m.Abilities)
}

func bestAbility(abilities map[string]float64) (float64, bool) {
	best := math.Inf(-1)
	found := false
	for _, v := range abilities {
		if math.IsNaN(v) {
			continue
		}
		if v > best {
			best = v
		}
		found = true
	}
	if !found {
		return 0, false
	}
	return best, true
}

// Breakdown keeps the normalized sub-scores a composite score was built from.
type Breakdown struct {
	Price    float64 `json:"price"`
	Ability  float64 `json:"ability_in_role"`
	Age      float64 `json:"age"`
	TypeRank float64 `json:"player_type_priority"`
}

// ScoredCandidate is a candidate plus everything derived while scoring it.
type ScoredCandidate struct {
	Candidate

	Price     float64   // parsed transfer value
	Breakdown Breakdown // normalized sub-scores
	Score     float64   // weighted composite

	// FillsDeficit reports whether one of the candidate's positions has an
	// open roster deficit. It is informational and never enters Score.
	FillsDeficit bool

	// Rank is the 1-based position assigned by the ranker; 0 until ranked.
	Rank int
}
