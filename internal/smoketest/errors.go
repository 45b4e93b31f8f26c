package smoketest

import "errors"

var (
	// ErrInconsistent indicates the service returned a shortlist that breaks an ordering rule.
	ErrInconsistent = errors.New("inconsistent shortlist")
	// ErrUnhealthy indicates the health check did not return 200.
	ErrUnhealthy = errors.New("service unhealthy")
)
