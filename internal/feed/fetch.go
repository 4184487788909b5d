package feed

import (
	"context"

	"golang.org/x/sync/errgroup"

	"navalwatch/internal/logger"
	"navalwatch/internal/metrics"
)

// FetchAll fans out over all sources with bounded concurrency and fans the
// results back in, keeping the configured source order. A failing source
// contributes an empty batch and a warning; it never stops the others.
func FetchAll(ctx context.Context, sources []Source, concurrency int, m *metrics.Metrics) []Batch {
	if concurrency <= 0 {
		concurrency = 1
	}

	batches := make([]Batch, len(sources))

	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	for i, src := range sources {
		g.Go(func() error {
			batches[i].Source = src.Name()

			items, err := src.Fetch(ctx)
			if err != nil {
				logger.Warn("source fetch failed", "source", src.Name(), "error", err)
				m.SourceFailed()
				return nil
			}

			batches[i].Items = items
			m.SourceFetched()
			m.AddItemsCollected(len(items))
			logger.Info("source fetched", "source", src.Name(), "items", len(items))
			return nil
		})
	}

	// Workers never return errors; failures are isolated per source.
	_ = g.Wait()

	return batches
}
