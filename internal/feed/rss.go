package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

const userAgent = "navalwatch/0.2 (+https://github.com/guillaume7625/navalwatch)"

// RSSSource fetches and parses one RSS or Atom feed.
type RSSSource struct {
	name   string
	url    string
	weight float64
	parser *gofeed.Parser
}

func NewRSSSource(name, url string, weight float64, timeout time.Duration) *RSSSource {
	p := gofeed.NewParser()
	p.UserAgent = userAgent
	p.Client = &http.Client{Timeout: timeout}
	return &RSSSource{
		name:   name,
		url:    url,
		weight: weight,
		parser: p,
	}
}

func (s *RSSSource) Name() string { return s.name }

// Fetch makes exactly one attempt; the daily cadence is the retry mechanism.
func (s *RSSSource) Fetch(ctx context.Context) ([]RawItem, error) {
	parsed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", s.url, err)
	}

	items := make([]RawItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		raw := RawItem{
			Title:     it.Title,
			Link:      it.Link,
			Published: it.Published,
			Parsed:    it.PublishedParsed,
			Summary:   it.Description,
			Source:    s.name,
			Weight:    s.weight,
		}
		if raw.Summary == "" {
			raw.Summary = it.Content
		}
		if raw.Parsed == nil && it.UpdatedParsed != nil {
			raw.Parsed = it.UpdatedParsed
			raw.Published = it.Updated
		}
		items = append(items, raw)
	}
	return items, nil
}
