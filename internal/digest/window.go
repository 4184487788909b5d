package digest

import "time"

// WithinWindow keeps entries published within the trailing window. The
// boundary is inclusive: an entry dated exactly now-days is kept. Undated
// entries are always kept; favoring inclusion over precision is the
// documented tradeoff. The caller supplies one now snapshot for the whole
// run so the boundary cannot drift between entries.
func WithinWindow(entries []Entry, now time.Time, days int) []Entry {
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)

	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Undated || !e.Published.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	return kept
}
