package policy

import (
	"context"
	"fmt"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/valuation"
)

// Resolver derives a ScoringPolicy from the batch inputs.
type Resolver interface {
	Resolve(ctx context.Context, candidates []model.Candidate, squad []model.SquadMember) (ScoringPolicy, error)
}

// PriceParser turns a raw transfer value into a number.
type PriceParser interface {
	Parse(raw string) float64
}

// Option applies a configuration option to Resolve.
type Option func(*options)

type options struct {
	parser    PriceParser
	overrides *Overrides
}

// WithParser sets the price parser the statistical strategy uses.
func WithParser(p PriceParser) Option {
	return func(o *options) {
		if p != nil {
			o.parser = p
		}
	}
}

// WithOverrides layers literal overrides over the manual table. Supplying
// overrides with any other strategy is a configuration error.
func WithOverrides(ov *Overrides) Option {
	return func(o *options) {
		o.overrides = ov
	}
}

// registry maps each strategy to the constructor of its resolver.
var registry = map[Strategy]func(o *options) Resolver{
	StrategyManual:      func(o *options) Resolver { return manualResolver{overrides: o.overrides} },
	StrategyHeuristic:   func(*options) Resolver { return tableResolver{table: heuristicTable} },
	StrategyStatistical: func(o *options) Resolver { return statisticalResolver{parser: o.parser} },
}

// Resolve produces the policy for strategy. The result is validated; any
// problem is reported as ErrInvalidConfiguration and nothing is defaulted.
func Resolve(ctx context.Context, strategy Strategy, candidates []model.Candidate, squad []model.SquadMember, opts ...Option) (ScoringPolicy, error) {
	o := &options{parser: valuation.Parser{}}
	for _, opt := range opts {
		opt(o)
	}

	build, ok := registry[strategy]
	if !ok {
		return ScoringPolicy{}, fmt.Errorf("%w: unknown strategy %s", ErrInvalidConfiguration, strategy)
	}
	if o.overrides != nil && strategy != StrategyManual {
		return ScoringPolicy{}, fmt.Errorf("%w: overrides only apply to the manual strategy, got %s", ErrInvalidConfiguration, strategy)
	}
	if err := ctx.Err(); err != nil {
		return ScoringPolicy{}, fmt.Errorf("resolve policy: %w", err)
	}

	p, err := build(o).Resolve(ctx, candidates, squad)
	if err != nil {
		return ScoringPolicy{}, err
	}
	p.Strategy = strategy
	if err := p.Validate(); err != nil {
		return ScoringPolicy{}, err
	}
	return p, nil
}

// tableResolver returns a fixed, hand-authored policy.
type tableResolver struct {
	table ScoringPolicy
}

func (r tableResolver) Resolve(context.Context, []model.Candidate, []model.SquadMember) (ScoringPolicy, error) {
	return r.table.clone(), nil
}

// manualResolver is the manual table with optional literal overrides.
type manualResolver struct {
	overrides *Overrides
}

func (r manualResolver) Resolve(context.Context, []model.Candidate, []model.SquadMember) (ScoringPolicy, error) {
	p := manualTable.clone()
	r.overrides.apply(&p)
	return p, nil
}
