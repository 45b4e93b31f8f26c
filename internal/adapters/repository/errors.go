package repository

import "errors"

// Sentinel kinds for shortlist errors.
var (
	ErrNotFound     = errors.New("candidate not found")
	ErrInvalidLimit = errors.New("invalid shortlist limit")
	ErrNotRanked    = errors.New("records are not in rank order")
)
