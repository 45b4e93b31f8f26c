package policy

import "github.com/okian/scout/internal/domain/model"

const million = 1_000_000

// manualTable is the hand-authored policy of the manual strategy.
var manualTable = ScoringPolicy{
	PriceBands: map[model.Category]PriceBand{
		model.CategoryWonderkid:   {Cheap: 0, Mid: 25 * million, Expensive: 50 * million},
		model.CategorySquadPlayer: {Cheap: 0, Mid: 40 * million, Expensive: 60 * million},
		model.CategoryStarter:     {Cheap: 0, Mid: 60 * million, Expensive: 100 * million},
	},
	Thresholds: Thresholds{SquadPlayer: 14, GoodPlayer: 15},
	PositionRequirements: map[string]int{
		"GK":     2,
		"D (C)":  4,
		"D (L)":  2,
		"D (R)":  2,
		"DM":     2,
		"M (C)":  4,
		"AM (L)": 2,
		"AM (R)": 2,
		"AM (C)": 2,
		"ST (C)": 3,
	},
	Weights: Weights{Price: 0.3, AbilityInRole: 0.5, Age: 0.1, PlayerTypePriority: 0.2},
}

// heuristicTable is tuned to the gaps assumed in the current squad: enough
// keepers, one centre-back, two central midfielders and a striker short.
var heuristicTable = ScoringPolicy{
	PriceBands: map[model.Category]PriceBand{
		model.CategoryWonderkid:   {Cheap: 0, Mid: 20 * million, Expensive: 50 * million},
		model.CategorySquadPlayer: {Cheap: 0, Mid: 30 * million, Expensive: 70 * million},
		model.CategoryStarter:     {Cheap: 0, Mid: 50 * million, Expensive: 100 * million},
	},
	Thresholds: Thresholds{SquadPlayer: 13.5, GoodPlayer: 15},
	PositionRequirements: map[string]int{
		"GK":     0,
		"D (C)":  1,
		"M (C)":  2,
		"ST (C)": 1,
	},
	Weights: Weights{Price: 0.25, AbilityInRole: 0.6, Age: 0.15, PlayerTypePriority: 0.3},
}

// statisticalWeights is the weight vector of the statistical strategy.
var statisticalWeights = Weights{Price: 0.2, AbilityInRole: 0.7, Age: 0.1, PlayerTypePriority: 0.2}
