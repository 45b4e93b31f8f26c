// Package scoring computes normalized sub-scores and the weighted composite
// score candidates are ranked by.
package scoring

import (
	"math"

	"github.com/okian/scout/internal/domain/deficit"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/policy"
	"github.com/okian/scout/internal/domain/valuation"
)

// Default scoring configuration constants.
const (
	// DefaultDegenerateScore is used for price and age when every candidate in
	// the batch shares the same value: all of them are at the best end.
	DefaultDegenerateScore = 1.0

	// NoAbilityScore is the ability sub-score of a candidate without any
	// role-ability data.
	NoAbilityScore = 0.0

	unknownTypePriority = 0.5
)

// DefaultTypePriorities is the player type lookup used by NewScorer.
func DefaultTypePriorities() map[model.Category]float64 {
	return map[model.Category]float64{
		model.CategoryWonderkid:   0.7,
		model.CategoryStarter:     1.0,
		model.CategorySquadPlayer: 0.7,
		model.CategoryUnknown:     unknownTypePriority,
	}
}

// PriceParser turns a raw transfer value into a number.
type PriceParser interface {
	Parse(raw string) float64
}

// Bounds are the batch-wide extremes price and age are normalized against.
type Bounds struct {
	MinPrice, MaxPrice float64
	MinAge, MaxAge     int
}

// NewBounds scans candidates for the price and age range of the batch.
// A nil parser uses the valuation package.
func NewBounds(candidates []model.Candidate, parser PriceParser) Bounds {
	if len(candidates) == 0 {
		return Bounds{}
	}
	if parser == nil {
		parser = valuation.Parser{}
	}
	b := Bounds{
		MinPrice: math.Inf(1),
		MaxPrice: math.Inf(-1),
		MinAge:   math.MaxInt,
		MaxAge:   math.MinInt,
	}
	for _, c := range candidates {
		p := parser.Parse(c.TransferValue)
		b.MinPrice = math.Min(b.MinPrice, p)
		b.MaxPrice = math.Max(b.MaxPrice, p)
		b.MinAge = min(b.MinAge, c.Age)
		b.MaxAge = max(b.MaxAge, c.Age)
	}
	return b
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithParser sets the price parser.
func WithParser(p PriceParser) Option {
	return func(s *Scorer) {
		if p != nil {
			s.parser = p
		}
	}
}

// WithTypePriorities replaces the player type lookup. Categories missing from
// priorities fall back to the unknown priority.
func WithTypePriorities(priorities map[model.Category]float64) Option {
	return func(s *Scorer) {
		// Copy to avoid external modifications
		s.typePriority = make(map[model.Category]float64, len(priorities))
		for k, v := range priorities {
			s.typePriority[k] = v
		}
	}
}

// WithDegenerateScore sets the sub-score used when a batch has no price or
// age spread. Values outside [0,1] are ignored.
func WithDegenerateScore(v float64) Option {
	return func(s *Scorer) {
		if v >= 0 && v <= 1 {
			s.degenerate = v
		}
	}
}

// Scorer is the stateless player scorer. It is safe for concurrent use once
// constructed.
type Scorer struct {
	parser       PriceParser
	typePriority map[model.Category]float64
	degenerate   float64
}

// NewScorer creates a scorer with configuration options.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		parser:       valuation.Parser{},
		typePriority: DefaultTypePriorities(),
		degenerate:   DefaultDegenerateScore,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Score computes the sub-scores and the weighted composite for c. Position fit
// is recorded on the result but does not contribute to the composite.
func (s *Scorer) Score(c model.Candidate, p policy.ScoringPolicy, deficits deficit.PositionDeficit, b Bounds) model.ScoredCandidate {
	price := s.parser.Parse(c.TransferValue)
	br := model.Breakdown{
		Price:    s.spread(b.MaxPrice-price, b.MaxPrice-b.MinPrice),
		Ability:  AbilityScore(c),
		Age:      s.spread(float64(b.MaxAge-c.Age), float64(b.MaxAge-b.MinAge)),
		TypeRank: s.TypePriority(c.Category),
	}

	return model.ScoredCandidate{
		Candidate:    c,
		Price:        price,
		Breakdown:    br,
		Score:        Composite(br, p.Weights),
		FillsDeficit: deficit.Fills(c.Positions, deficits),
	}
}

// Bounds scans candidates with the scorer's own price parser, so the batch
// range and the per-candidate prices agree.
func (s *Scorer) Bounds(candidates []model.Candidate) Bounds {
	return NewBounds(candidates, s.parser)
}

// Parser returns the price parser the scorer uses.
func (s *Scorer) Parser() PriceParser { return s.parser }

// TypePriority returns the lookup value for a category.
func (s *Scorer) TypePriority(cat model.Category) float64 {
	if v, ok := s.typePriority[cat]; ok {
		return v
	}
	if v, ok := s.typePriority[model.CategoryUnknown]; ok {
		return v
	}
	return unknownTypePriority
}

// spread normalizes distance-from-max over the batch range.
func (s *Scorer) spread(fromMax, width float64) float64 {
	if width <= 0 {
		return s.degenerate
	}
	return clamp01(fromMax / width)
}

// AbilityScore is the best present role ability over the 0-20 scale.
// Candidates without ability data get NoAbilityScore.
func AbilityScore(c model.Candidate) float64 {
	best, ok := c.BestAbility()
	if !ok {
		return NoAbilityScore
	}
	return clamp01(best / model.MaxAbility)
}

// Composite is the weighted sum of the sub-scores.
func Composite(br model.Breakdown, w policy.Weights) float64 {
	return w.Price*br.Price +
		w.AbilityInRole*br.Ability +
		w.Age*br.Age +
		w.PlayerTypePriority*br.TypeRank
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
