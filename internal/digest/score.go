package digest

import "strings"

// Scorer assigns relevance scores from a keyword→weight table. Matching
// is case-insensitive substring matching over title plus summary: the
// keyword "ai" also hits "maintain". That is deliberate and must stay;
// word-boundary matching would change documented scoring semantics.
type Scorer struct {
	weights map[string]float64
}

func NewScorer(weights map[string]float64) *Scorer {
	normalized := make(map[string]float64, len(weights))
	for kw, w := range weights {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		normalized[kw] = w
	}
	return &Scorer{weights: normalized}
}

// Score sums the weights of every configured keyword present in the
// entry's text, once per keyword, then applies the source authority
// weight. Pure: same entry and table always give the same score.
func (s *Scorer) Score(e Entry) float64 {
	text := strings.ToLower(e.Title + " " + e.Summary)

	var sum float64
	for kw, w := range s.weights {
		if strings.Contains(text, kw) {
			sum += w
		}
	}

	weight := e.SourceWeight
	if weight <= 0 {
		weight = 1.0
	}
	return sum * weight
}

// Apply returns a new slice with scores set; the input is left untouched.
func (s *Scorer) Apply(entries []Entry) []Entry {
	scored := make([]Entry, len(entries))
	for i, e := range entries {
		e.Score = s.Score(e)
		scored[i] = e
	}
	return scored
}
