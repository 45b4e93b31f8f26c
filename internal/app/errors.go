package service

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrNoResult is returned by reads before the first batch completes.
	ErrNoResult = errors.New("no batch result yet")
)
