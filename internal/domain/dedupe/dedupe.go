// Package dedupe guards the uniqueness of candidate names within a batch.
package dedupe

import (
	"context"
	"strings"
	"sync"
)

// Deduper records names seen in the current batch.
type Deduper interface {
	// SeenAndRecord atomically checks if name was seen and records it if not.
	// Returns true if name was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, name string) bool

	// Size returns the number of distinct names recorded.
	Size() int
}

// nameDeduper implements Deduper over a map keyed by the normalized name.
type nameDeduper struct {
	mu        sync.Mutex
	seen      map[string]struct{}
	normalize func(string) string
}

// New creates a deduper with configuration options. By default names are
// compared after trimming surrounding whitespace.
func New(opts ...Option) Deduper {
	d := &nameDeduper{
		seen:      make(map[string]struct{}),
		normalize: strings.TrimSpace,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *nameDeduper) SeenAndRecord(_ context.Context, name string) bool {
	key := d.normalize(name)

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; exists {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *nameDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
