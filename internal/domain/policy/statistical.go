package policy

import (
	"context"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/scout/internal/domain/deficit"
	"github.com/okian/scout/internal/domain/model"
)

// TargetDepth is the headcount the statistical strategy wants per position.
const TargetDepth = 2

// Price percentiles feeding the statistical bands.
const (
	p50 = 0.50
	p75 = 0.75
	p90 = 0.90
)

// statisticalResolver calibrates the policy from the input populations.
type statisticalResolver struct {
	parser PriceParser
}

func (r statisticalResolver) Resolve(_ context.Context, candidates []model.Candidate, squad []model.SquadMember) (ScoringPolicy, error) {
	return ScoringPolicy{
		PriceBands:           r.priceBands(candidates),
		Thresholds:           abilityThresholds(squad),
		PositionRequirements: positionRequirements(candidates, squad),
		Weights:              statisticalWeights,
	}, nil
}

// abilityThresholds uses the mean and mean+stddev of each squad member's best
// role ability. Members without any ability data are left out.
func abilityThresholds(squad []model.SquadMember) Thresholds {
	best := make([]float64, 0, len(squad))
	for _, m := range squad {
		if v, ok := m.BestAbility(); ok {
			best = append(best, v)
		}
	}
	if len(best) == 0 {
		return Thresholds{}
	}
	mean := stat.Mean(best, nil)
	sd := 0.0
	if len(best) > 1 {
		sd = stat.StdDev(best, nil)
	}
	return Thresholds{SquadPlayer: mean, GoodPlayer: mean + sd}
}

func (r statisticalResolver) priceBands(candidates []model.Candidate) map[model.Category]PriceBand {
	prices := make([]float64, len(candidates))
	for i, c := range candidates {
		prices[i] = r.parser.Parse(c.TransferValue)
	}
	sort.Float64s(prices)

	var median, q75, q90, top float64
	if len(prices) > 0 {
		median = percentile(prices, p50)
		q75 = percentile(prices, p75)
		q90 = percentile(prices, p90)
		top = floats.Max(prices)
	}
	return map[model.Category]PriceBand{
		model.CategoryWonderkid:   {Cheap: 0, Mid: median, Expensive: q75},
		model.CategorySquadPlayer: {Cheap: 0, Mid: q75, Expensive: q90},
		model.CategoryStarter:     {Cheap: 0, Mid: q90, Expensive: top},
	}
}

// percentile interpolates linearly between the closest ranks of the sorted
// sample, placing p at index p*(n-1). sorted must be non-empty.
func percentile(sorted []float64, p float64) float64 {
	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// positionRequirements asks for TargetDepth players at every position that
// appears in the candidate pool, net of the current squad count.
func positionRequirements(candidates []model.Candidate, squad []model.SquadMember) map[string]int {
	counts := deficit.Count(squad)
	req := make(map[string]int)
	for _, c := range candidates {
		for _, tag := range c.Positions {
			req[tag] = max(TargetDepth-counts[tag], 0)
		}
	}
	return req
}
