package dedupe

import "strings"

// Option applies a configuration option to the deduper.
type Option func(*nameDeduper)

// WithCaseInsensitive treats names differing only in case as the same player.
func WithCaseInsensitive() Option {
	return func(d *nameDeduper) {
		d.normalize = func(s string) string {
			return strings.ToLower(strings.TrimSpace(s))
		}
	}
}
