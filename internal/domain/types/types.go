// Package types contains common types used across the application
package types

import "github.com/okian/scout/internal/domain/model"

// Entry is the JSON view of one ranked shortlist record.
type Entry struct {
	Rank          int             `json:"rank"`
	Name          string          `json:"name"`
	Score         float64         `json:"score"`
	Age           int             `json:"age"`
	Positions     []string        `json:"positions"`
	PlayerType    string          `json:"player_type"`
	TransferValue string          `json:"transfer_value"`
	Price         float64         `json:"price"`
	BestAbility   *float64        `json:"best_ability,omitempty"`
	FillsDeficit  bool            `json:"fills_deficit"`
	Breakdown     model.Breakdown `json:"breakdown"`
}

// FromScored builds the JSON view of a scored record.
func FromScored(sc model.ScoredCandidate) Entry { //nolint:gocritic // hugeParam: value semantics keep records immutable
	e := Entry{
		Rank:          sc.Rank,
		Name:          sc.Name,
		Score:         sc.Score,
		Age:           sc.Age,
		Positions:     sc.Positions,
		PlayerType:    sc.Category.String(),
		TransferValue: sc.TransferValue,
		Price:         sc.Price,
		FillsDeficit:  sc.FillsDeficit,
		Breakdown:     sc.Breakdown,
	}
	if best, ok := sc.BestAbility(); ok {
		e.BestAbility = &best
	}
	if e.Positions == nil {
		e.Positions = []string{}
	}
	return e
}
