package model

import "errors"

// Sentinel kinds for record-level data problems. Both are recovered locally.
var (
	// ErrMissingAbility marks an ability cell that is empty, non-numeric or
	// outside [0, MaxAbility]; the cell is dropped from the record.
	ErrMissingAbility = errors.New("missing ability data")
)
