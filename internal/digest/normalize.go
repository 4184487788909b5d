package digest

import (
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"

	"navalwatch/internal/feed"
)

// Trailers like "The post X appeared first on Y" that some feeds append
// to every summary.
var postFooterRe = regexp.MustCompile(`(?i)the post\s.{0,200}appeared first on\s.*$`)

// Normalizer maps raw feed items into canonical entries. All entries of a
// run share one now snapshot, taken at construction.
type Normalizer struct {
	now             time.Time
	maxSummaryChars int
}

func NewNormalizer(now time.Time, maxSummaryChars int) *Normalizer {
	return &Normalizer{now: now, maxSummaryChars: maxSummaryChars}
}

// Normalize converts one raw item. The second return value is false when
// the item has no link and cannot satisfy the identity invariant.
func (n *Normalizer) Normalize(raw feed.RawItem) (Entry, bool) {
	link := strings.TrimSpace(raw.Link)
	if link == "" {
		return Entry{}, false
	}

	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = placeholderTitle(link)
	}

	published, undated := n.resolvePublished(raw)

	weight := raw.Weight
	if weight <= 0 {
		weight = 1.0
	}

	return Entry{
		Title:        title,
		Link:         link,
		Published:    published,
		Undated:      undated,
		Summary:      n.cleanSummary(raw.Summary),
		Source:       raw.Source,
		SourceWeight: weight,
	}, true
}

// NormalizeAll maps a whole batch, dropping link-less items and reporting
// how many were dropped. Output order follows input order, but callers
// must not rely on it.
func (n *Normalizer) NormalizeAll(items []feed.RawItem) (entries []Entry, dropped int) {
	entries = make([]Entry, 0, len(items))
	for _, raw := range items {
		e, ok := n.Normalize(raw)
		if !ok {
			dropped++
			continue
		}
		entries = append(entries, e)
	}
	return entries, dropped
}

func (n *Normalizer) resolvePublished(raw feed.RawItem) (time.Time, bool) {
	if raw.Parsed != nil {
		return raw.Parsed.UTC(), false
	}
	if s := strings.TrimSpace(raw.Published); s != "" {
		if t, err := dateparse.ParseAny(s); err == nil {
			return t.UTC(), false
		}
	}
	// Documented fallback: undated entries carry the run snapshot and are
	// never dropped by the window filter.
	return n.now, true
}

// cleanSummary strips markup down to plain text and caps the length on a
// word boundary.
func (n *Normalizer) cleanSummary(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
		s = doc.Text()
	} else {
		s = html.UnescapeString(s)
	}

	s = postFooterRe.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) <= n.maxSummaryChars {
		return s
	}
	cut := string(runes[:n.maxSummaryChars-1])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}

// placeholderTitle derives a readable stand-in from the link's host and
// path when a feed item comes without a title.
func placeholderTitle(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return link
	}
	title := strings.TrimPrefix(u.Host, "www.")
	if p := strings.Trim(u.Path, "/"); p != "" {
		title += " " + strings.ReplaceAll(p, "/", " ")
	}
	return title
}
