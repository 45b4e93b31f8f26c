package model

import "strings"

// Category is the player type a candidate was shortlisted under.
type Category string

// Known categories. Anything else in the dataset maps to CategoryUnknown.
const (
	CategoryWonderkid   Category = "wonderkid"
	CategorySquadPlayer Category = "squad_player"
	CategoryStarter     Category = "starter"
	CategoryUnknown     Category = "unknown"
)

// Categories lists the known, non-unknown categories in a stable order.
func Categories() []Category {
	return []Category{CategoryWonderkid, CategorySquadPlayer, CategoryStarter}
}

// ParseCategory maps a Player_Type cell to a Category. Both singular labels and
// the plural file-name labels written by the shortlist merger are accepted.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wonderkid", "wonderkids":
		return CategoryWonderkid
	case "squad_player", "squad_players":
		return CategorySquadPlayer
	case "starter", "starters":
		return CategoryStarter
	default:
		return CategoryUnknown
	}
}

func (c Category) String() string { return string(c) }
