// Package policy resolves the scoring policy for a batch run.
//
// A policy bundles price bands per player category, ability thresholds,
// per-position roster requirements and the weight vector the scorer combines
// sub-scores with. Three strategies produce it: fixed manual constants, fixed
// heuristic constants, and constants derived from the input populations.
package policy

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okian/scout/internal/domain/model"
)

var validate = validator.New()

// PriceBand holds the price breakpoints for one player category.
type PriceBand struct {
	Cheap     float64 `json:"cheap" validate:"gte=0"`
	Mid       float64 `json:"mid" validate:"gte=0"`
	Expensive float64 `json:"expensive" validate:"gtefield=Mid"`
}

// Thresholds are the ability cut points. SquadPlayer lies on the 0-20 scale;
// a derived GoodPlayer (mean plus one standard deviation) may exceed 20.
type Thresholds struct {
	SquadPlayer float64 `json:"squad_player" validate:"gte=0,lte=20"`
	GoodPlayer  float64 `json:"good_player" validate:"gtefield=SquadPlayer"`
}

// Weights are linear-combination coefficients. They need not sum to 1.
type Weights struct {
	Price              float64 `json:"price" validate:"gte=0"`
	AbilityInRole      float64 `json:"ability_in_role" validate:"gte=0"`
	Age                float64 `json:"age" validate:"gte=0"`
	PlayerTypePriority float64 `json:"player_type_priority" validate:"gte=0"`
}

// Sum returns the upper bound of any composite score built with w.
func (w Weights) Sum() float64 {
	return w.Price + w.AbilityInRole + w.Age + w.PlayerTypePriority
}

// ScoringPolicy is the fully resolved configuration a batch is scored with.
type ScoringPolicy struct {
	Strategy             Strategy                     `json:"strategy"`
	PriceBands           map[model.Category]PriceBand `json:"price_bands" validate:"dive"`
	Thresholds           Thresholds                   `json:"ability_thresholds"`
	PositionRequirements map[string]int               `json:"position_requirements" validate:"dive,keys,required,endkeys,gte=0"`
	Weights              Weights                      `json:"weights"`
}

// Validate checks the structural invariants of p. Every violation is reported,
// wrapped in ErrInvalidConfiguration.
func (p ScoringPolicy) Validate() error {
	var problems []string

	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}

	for _, cat := range model.Categories() {
		if _, ok := p.PriceBands[cat]; !ok {
			problems = append(problems, fmt.Sprintf("price band for %s is missing", cat))
		}
	}

	for name, w := range map[string]float64{
		"price":                p.Weights.Price,
		"ability_in_role":      p.Weights.AbilityInRole,
		"age":                  p.Weights.Age,
		"player_type_priority": p.Weights.PlayerTypePriority,
	} {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			problems = append(problems, fmt.Sprintf("weight %s must be a finite number", name))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, strings.Join(problems, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be below %s", field, fe.Param())
	case "required":
		return fmt.Sprintf("%s is required", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

// clone returns a deep copy so literal tables are never shared with callers.
func (p ScoringPolicy) clone() ScoringPolicy {
	out := p
	out.PriceBands = make(map[model.Category]PriceBand, len(p.PriceBands))
	for k, v := range p.PriceBands {
		out.PriceBands[k] = v
	}
	out.PositionRequirements = make(map[string]int, len(p.PositionRequirements))
	for k, v := range p.PositionRequirements {
		out.PositionRequirements[k] = v
	}
	return out
}
