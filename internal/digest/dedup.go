package digest

// Dedup collapses entries sharing a fingerprint. The earlier-published
// entry wins; on equal timestamps the one encountered first is kept, so
// callers feeding entries in configured source order get a deterministic
// result. Output keeps first-occurrence positions, which makes the pass
// idempotent.
//
// Known limitation: near-duplicate stories with different titles are not
// merged. Semantic dedup is out of scope.
func Dedup(entries []Entry) []Entry {
	index := make(map[string]int, len(entries))
	out := make([]Entry, 0, len(entries))

	for _, e := range entries {
		fp := e.Fingerprint()
		if at, seen := index[fp]; seen {
			if e.Published.Before(out[at].Published) {
				out[at] = e
			}
			continue
		}
		index[fp] = len(out)
		out = append(out, e)
	}
	return out
}
