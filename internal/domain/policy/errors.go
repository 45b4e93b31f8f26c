package policy

import "errors"

// ErrInvalidConfiguration is fatal: an unknown strategy, a structurally invalid
// override document, or a resolved policy that breaks its invariants. The batch
// must abort before any candidate is scored.
var ErrInvalidConfiguration = errors.New("invalid scoring configuration")
