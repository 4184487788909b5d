package digest

import "sort"

// Rank merges scored entries from all sources into the final ordered
// result: one more dedup pass catches cross-feed duplicates, then a sort
// with a total deterministic order. Sort key: score descending, then
// published descending, then fingerprint ascending. Sorting the output
// again always yields the identical sequence.
func Rank(entries []Entry) []Entry {
	merged := Dedup(entries)

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Score != merged[j].Score {
			return merged[i].Score > merged[j].Score
		}
		if !merged[i].Published.Equal(merged[j].Published) {
			return merged[i].Published.After(merged[j].Published)
		}
		return merged[i].Fingerprint() < merged[j].Fingerprint()
	})
	return merged
}
