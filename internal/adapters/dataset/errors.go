package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	// ErrMissingColumn is fatal: a required column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")
	// ErrInvalidRow marks a row that was skipped, e.g. for an unparseable Age.
	ErrInvalidRow = errors.New("invalid row")
	// ErrEmptyTable is returned when a file has no header line.
	ErrEmptyTable = errors.New("empty table")
)
