// Package digest implements the core pipeline: normalization, time-window
// filtering, deduplication, keyword scoring and ranking. Every stage
// consumes its input and produces a new slice; entries are never mutated
// in place once scored.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"time"
)

// Entry is the canonical news item carried through the pipeline.
type Entry struct {
	Title     string
	Link      string
	Published time.Time
	// Undated marks entries whose source gave no parsable timestamp;
	// Published then holds the run's now snapshot and the window filter
	// keeps them unconditionally.
	Undated      bool
	Summary      string
	Source       string
	SourceWeight float64
	Score        float64
}

// Fingerprint is the dedup identity: a hash of the normalized title and
// the normalized link. Deterministic and pure; never used for display.
func (e Entry) Fingerprint() string {
	return Fingerprint(e.Title, e.Link)
}

func Fingerprint(title, link string) string {
	h := sha256.New()
	h.Write([]byte(normalizeTitle(title) + "|" + normalizeLink(link)))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// normalizeTitle lowercases and collapses all whitespace runs.
func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// normalizeLink reduces a URL to scheme+host+path: query and fragment
// stripped, trailing slash stripped, scheme and host lowercased. Links
// that do not parse are used as-is, trimmed.
func normalizeLink(link string) string {
	link = strings.TrimSpace(link)
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(strings.ToLower(link), "/")
	}
	path := strings.TrimSuffix(u.EscapedPath(), "/")
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + path
}
