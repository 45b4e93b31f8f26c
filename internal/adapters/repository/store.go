// Package repository holds the ranked shortlist of the last batch run.
package repository

import (
	"context"

	"github.com/okian/scout/internal/domain/model"
)

// Store provides read access to the published shortlist.
type Store interface {
	// Publish replaces the shortlist with a freshly ranked batch.
	Publish(ctx context.Context, ranked []model.ScoredCandidate) error

	// Rank returns the ranked record for a candidate name.
	// Returns ErrNotFound if the name is unknown.
	Rank(ctx context.Context, name string) (model.ScoredCandidate, error)

	// TopN returns the first n records in rank order.
	TopN(ctx context.Context, n int) ([]model.ScoredCandidate, error)

	// Count returns the number of ranked candidates.
	Count(ctx context.Context) int
}
