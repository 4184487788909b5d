package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navalwatch/internal/metrics"
)

type stubSource struct {
	name  string
	items []RawItem
	err   error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(ctx context.Context) ([]RawItem, error) {
	return s.items, s.err
}

func TestFetchAllKeepsConfiguredSourceOrder(t *testing.T) {
	sources := []Source{
		&stubSource{name: "a", items: []RawItem{{Title: "a1", Link: "https://a/1"}}},
		&stubSource{name: "b", items: []RawItem{{Title: "b1", Link: "https://b/1"}}},
		&stubSource{name: "c", items: []RawItem{{Title: "c1", Link: "https://c/1"}}},
	}

	batches := FetchAll(context.Background(), sources, 2, metrics.New())
	require.Len(t, batches, 3)
	assert.Equal(t, "a", batches[0].Source)
	assert.Equal(t, "b", batches[1].Source)
	assert.Equal(t, "c", batches[2].Source)
}

func TestFetchAllIsolatesFailures(t *testing.T) {
	m := metrics.New()
	sources := []Source{
		&stubSource{name: "bad", err: errors.New("connection refused")},
		&stubSource{name: "good", items: []RawItem{{Title: "ok", Link: "https://g/1"}}},
	}

	batches := FetchAll(context.Background(), sources, 4, m)
	require.Len(t, batches, 2)
	assert.Empty(t, batches[0].Items, "failed source contributes zero items")
	assert.Len(t, batches[1].Items, 1)

	assert.Equal(t, int64(1), m.SourcesFailed)
	assert.Equal(t, int64(1), m.SourcesFetched)
	assert.Equal(t, int64(1), m.ItemsCollected)
}

func TestFetchAllNoSources(t *testing.T) {
	batches := FetchAll(context.Background(), nil, 4, metrics.New())
	assert.Empty(t, batches)
}
