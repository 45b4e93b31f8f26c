package policy

import (
	"fmt"
	"strings"
)

// Strategy selects how a ScoringPolicy is derived.
type Strategy int

// Supported strategies. The zero value is invalid so an unset
// selector can never pass for a real choice.
const (
	StrategyManual Strategy = iota + 1
	StrategyHeuristic
	StrategyStatistical
)

var strategyNames = map[Strategy]string{
	StrategyManual:      "manual",
	StrategyHeuristic:   "heuristic",
	StrategyStatistical: "statistical",
}

// ParseStrategy maps a configured selector to a Strategy. Names are matched
// case-insensitively; the numeric modes 1, 2 and 3 are accepted as aliases.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manual", "1":
		return StrategyManual, nil
	case "heuristic", "2":
		return StrategyHeuristic, nil
	case "statistical", "3":
		return StrategyStatistical, nil
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfiguration, s)
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// MarshalText renders the strategy by name.
func (s Strategy) MarshalText() ([]byte, error) {
	if _, ok := strategyNames[s]; !ok {
		return nil, fmt.Errorf("%w: unknown strategy %d", ErrInvalidConfiguration, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText parses a strategy name or numeric alias.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
