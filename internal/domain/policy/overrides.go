package policy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/okian/scout/internal/domain/model"
)

//go:embed overrides.schema.json
var overridesSchema string

// BandOverride replaces individual breakpoints of one price band.
type BandOverride struct {
	Cheap     *float64 `json:"cheap"`
	Mid       *float64 `json:"mid"`
	Expensive *float64 `json:"expensive"`
}

// ThresholdOverride replaces individual ability thresholds.
type ThresholdOverride struct {
	SquadPlayer *float64 `json:"squad_player"`
	GoodPlayer  *float64 `json:"good_player"`
}

// WeightOverride replaces individual weights.
type WeightOverride struct {
	Price              *float64 `json:"price"`
	AbilityInRole      *float64 `json:"ability_in_role"`
	Age                *float64 `json:"age"`
	PlayerTypePriority *float64 `json:"player_type_priority"`
}

// Overrides are literal values layered over the manual table. Absent fields
// keep the table value; position_requirements, when present, replaces the
// whole requirement map.
type Overrides struct {
	PriceBands           map[model.Category]BandOverride `json:"price_bands"`
	Thresholds           *ThresholdOverride              `json:"ability_thresholds"`
	PositionRequirements map[string]int                  `json:"position_requirements"`
	Weights              *WeightOverride                 `json:"weights"`
}

// LoadOverrides reads and validates an override document from path.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read overrides %s: %v", ErrInvalidConfiguration, path, err)
	}
	return ParseOverrides(data)
}

// ParseOverrides validates data against the override schema and decodes it.
// Non-numeric weights, negative headcounts and unknown keys are rejected.
func ParseOverrides(data []byte) (*Overrides, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(overridesSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: overrides: %v", ErrInvalidConfiguration, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("%w: overrides: %s", ErrInvalidConfiguration, strings.Join(errs, "; "))
	}

	var ov Overrides
	if err := json.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("%w: overrides: %v", ErrInvalidConfiguration, err)
	}
	return &ov, nil
}

func (ov *Overrides) apply(p *ScoringPolicy) {
	if ov == nil {
		return
	}
	for cat, b := range ov.PriceBands {
		band := p.PriceBands[cat]
		set(&band.Cheap, b.Cheap)
		set(&band.Mid, b.Mid)
		set(&band.Expensive, b.Expensive)
		p.PriceBands[cat] = band
	}
	if t := ov.Thresholds; t != nil {
		set(&p.Thresholds.SquadPlayer, t.SquadPlayer)
		set(&p.Thresholds.GoodPlayer, t.GoodPlayer)
	}
	if ov.PositionRequirements != nil {
		p.PositionRequirements = make(map[string]int, len(ov.PositionRequirements))
		for k, v := range ov.PositionRequirements {
			p.PositionRequirements[k] = v
		}
	}
	if w := ov.Weights; w != nil {
		set(&p.Weights.Price, w.Price)
		set(&p.Weights.AbilityInRole, w.AbilityInRole)
		set(&p.Weights.Age, w.Age)
		set(&p.Weights.PlayerTypePriority, w.PlayerTypePriority)
	}
}

func set(dst, src *float64) {
	if src != nil {
		*dst = *src
	}
}
