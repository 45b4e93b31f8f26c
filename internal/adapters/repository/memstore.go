package repository

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/ranking"
	"github.com/okian/scout/pkg/metrics"
)

// snapshot is an immutable view of one published batch.
type snapshot struct {
	ranked []model.ScoredCandidate
	byName map[string]int
}

// MemoryStore keeps the shortlist in memory. Reads are lock-free against an
// atomically swapped snapshot.
type MemoryStore struct {
	snap atomic.Pointer[snapshot]
	key  func(string) string
}

// NewMemoryStore creates an empty store with configuration options.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{key: strings.TrimSpace}

	for _, opt := range opts {
		opt(s)
	}

	s.snap.Store(&snapshot{byName: map[string]int{}})
	return s
}

// Publish replaces the shortlist. Records must carry ranks 1..n in order.
func (s *MemoryStore) Publish(ctx context.Context, ranked []model.ScoredCandidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	next := &snapshot{
		ranked: make([]model.ScoredCandidate, len(ranked)),
		byName: make(map[string]int, len(ranked)),
	}
	for i, sc := range ranked {
		if sc.Rank != i+1 {
			return fmt.Errorf("%w: %s has rank %d at position %d", ErrNotRanked, sc.Name, sc.Rank, i+1)
		}
		next.ranked[i] = sc
		if _, dup := next.byName[s.key(sc.Name)]; !dup {
			next.byName[s.key(sc.Name)] = i
		}
	}

	s.snap.Store(next)
	metrics.SetShortlistSize(len(ranked))
	return nil
}

// Rank returns the ranked record for name.
func (s *MemoryStore) Rank(_ context.Context, name string) (model.ScoredCandidate, error) {
	snap := s.snap.Load()
	i, ok := snap.byName[s.key(name)]
	if !ok {
		return model.ScoredCandidate{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return snap.ranked[i], nil
}

// TopN returns the first n records. n larger than the shortlist returns all.
func (s *MemoryStore) TopN(_ context.Context, n int) ([]model.ScoredCandidate, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}
	top := ranking.Top(s.snap.Load().ranked, n)
	out := make([]model.ScoredCandidate, len(top))
	copy(out, top)
	return out, nil
}

// Count returns the number of ranked candidates.
func (s *MemoryStore) Count(_ context.Context) int {
	return len(s.snap.Load().ranked)
}
