// Package app wires the run together: fan-out fetch, the digest pipeline
// and the published artifacts.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"navalwatch/internal/config"
	"navalwatch/internal/digest"
	"navalwatch/internal/feed"
	"navalwatch/internal/logger"
	"navalwatch/internal/metrics"
	"navalwatch/internal/render"
)

// ErrNoEntries is the run-level failure raised when every configured
// source together produced nothing. It must surface loudly so a stale
// digest is never mistaken for a fresh empty one.
var ErrNoEntries = errors.New("no entries produced")

type App struct {
	cfg *config.Config
}

func New(cfg *config.Config) *App {
	return &App{cfg: cfg}
}

// Run executes one full pipeline pass. Per-source failures are isolated;
// the previous digest stays published unless this run completes.
func (a *App) Run(ctx context.Context) error {
	start := time.Now()
	now := start.UTC() // single snapshot for the whole run
	m := metrics.New()

	sources := a.buildSources(m)
	logger.Info("run started",
		"sources", len(sources), "days_window", a.cfg.DaysWindow)

	batches := feed.FetchAll(ctx, sources, a.cfg.FetchConcurrency, m)

	normalizer := digest.NewNormalizer(now, a.cfg.MaxSummaryChars)
	scorer := digest.NewScorer(a.cfg.KeywordWeights)

	// Per-source: normalize, window, dedup, score. Batches arrive in
	// configured source order, which fixes the dedup tie-break order.
	var scored []digest.Entry
	for _, batch := range batches {
		entries, dropped := normalizer.NormalizeAll(batch.Items)
		m.AddEntriesDropped(dropped)

		entries = digest.WithinWindow(entries, now, a.cfg.DaysWindow)

		before := len(entries)
		entries = digest.Dedup(entries)
		m.AddDuplicatesRemoved(before - len(entries))

		scored = append(scored, scorer.Apply(entries)...)
	}

	// Merge: one more dedup across sources, then the total-order sort.
	merged := len(scored)
	ranked := digest.Rank(scored)
	m.AddDuplicatesRemoved(merged - len(ranked))

	if len(ranked) == 0 {
		m.RecordRunDuration(time.Since(start))
		logger.Error("run produced nothing, keeping previous digest", m.Snapshot()...)
		return fmt.Errorf("%d configured sources: %w", len(sources), ErrNoEntries)
	}

	for i, e := range ranked {
		if i >= 3 {
			break
		}
		logger.Debug("top entry",
			"rank", i+1, "score", e.Score, "source", e.Source, "title", e.Title)
	}

	publisher := &render.Publisher{
		OutputDir: a.cfg.OutputDir,
		HTMLFile:  a.cfg.HTMLFile,
		CSVFile:   a.cfg.CSVFile,
	}
	if err := publisher.Publish(ranked, now, a.cfg.DaysWindow); err != nil {
		return fmt.Errorf("publish digest: %w", err)
	}

	m.SetEntriesPublished(len(ranked))
	m.RecordRunDuration(time.Since(start))
	logger.Info("run finished", m.Snapshot()...)
	return nil
}

func (a *App) buildSources(m *metrics.Metrics) []feed.Source {
	sources := make([]feed.Source, 0, len(a.cfg.Feeds)+1)
	for _, f := range a.cfg.Feeds {
		sources = append(sources, feed.NewRSSSource(f.Name, f.URL, f.Weight, a.cfg.RequestTimeout))
	}

	switch {
	case a.cfg.GenConfigured():
		sources = append(sources,
			feed.NewAPISource("gen", a.cfg.GenEndpoint, a.cfg.GenToken, a.cfg.RequestTimeout))
	case a.cfg.GenPartial():
		// Unconfigured, not an error: only one of endpoint/token is set.
		logger.Warn("gen endpoint incomplete, skipping source")
		m.SourceSkipped()
	}

	return sources
}
