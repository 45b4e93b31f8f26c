package valuation

import "errors"

// ErrMalformedPrice marks price text outside the accepted grammar.
var ErrMalformedPrice = errors.New("malformed price")
