package repository

import "strings"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithCaseInsensitiveLookup makes Rank ignore the case of the name.
func WithCaseInsensitiveLookup() Option {
	return func(s *MemoryStore) {
		s.key = func(name string) string {
			return strings.ToLower(strings.TrimSpace(name))
		}
	}
}
