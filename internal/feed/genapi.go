package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APISource pulls items from an authenticated JSON endpoint. It is only
// constructed when both the endpoint URL and the bearer token are set;
// a half-configured pair means the source is skipped upstream.
type APISource struct {
	name     string
	endpoint string
	token    string
	client   *http.Client
}

func NewAPISource(name, endpoint, token string, timeout time.Duration) *APISource {
	return &APISource{
		name:     name,
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: timeout},
	}
}

func (s *APISource) Name() string { return s.name }

type apiItem struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Link      string `json:"link"`
	Published string `json:"published"`
	Date      string `json:"date"`
	Summary   string `json:"summary"`
}

// The endpoint returns either a bare JSON array or an object wrapping it.
type apiEnvelope struct {
	Items []apiItem `json:"items"`
}

func (s *APISource) Fetch(ctx context.Context) ([]RawItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", s.endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: status %d", s.endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.endpoint, err)
	}

	var parsed []apiItem
	if err := json.Unmarshal(body, &parsed); err != nil {
		var env apiEnvelope
		if err2 := json.Unmarshal(body, &env); err2 != nil {
			return nil, fmt.Errorf("decode %s: %w", s.endpoint, err)
		}
		parsed = env.Items
	}

	items := make([]RawItem, 0, len(parsed))
	for _, it := range parsed {
		link := it.URL
		if link == "" {
			link = it.Link
		}
		published := it.Published
		if published == "" {
			published = it.Date
		}
		items = append(items, RawItem{
			Title:     it.Title,
			Link:      link,
			Published: published,
			Summary:   it.Summary,
			Source:    s.name,
			Weight:    1.0,
		})
	}
	return items, nil
}
