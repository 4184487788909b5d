package metrics

import (
	"sync"
	"time"
)

// Metrics collects counters for a single run. Fetch workers update it
// concurrently; the rest of the pipeline is single-threaded.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	SourcesFetched    int64
	SourcesFailed     int64
	SourcesSkipped    int64
	ItemsCollected    int64
	EntriesDropped    int64
	DuplicatesRemoved int64
	EntriesPublished  int64

	// Timings
	RunDuration time.Duration
}

func New() *Metrics {
	return &Metrics{}
}

func (m *Metrics) SourceFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourcesFetched++
}

func (m *Metrics) SourceFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourcesFailed++
}

func (m *Metrics) SourceSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourcesSkipped++
}

func (m *Metrics) AddItemsCollected(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsCollected += int64(n)
}

func (m *Metrics) AddEntriesDropped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesDropped += int64(n)
}

func (m *Metrics) AddDuplicatesRemoved(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesRemoved += int64(n)
}

func (m *Metrics) SetEntriesPublished(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesPublished = int64(n)
}

func (m *Metrics) RecordRunDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunDuration = d
}

// Snapshot returns the counters as slog-ready key/value pairs.
func (m *Metrics) Snapshot() []any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return []any{
		"sources_fetched", m.SourcesFetched,
		"sources_failed", m.SourcesFailed,
		"sources_skipped", m.SourcesSkipped,
		"items_collected", m.ItemsCollected,
		"entries_dropped", m.EntriesDropped,
		"duplicates_removed", m.DuplicatesRemoved,
		"entries_published", m.EntriesPublished,
		"run_duration_ms", m.RunDuration.Milliseconds(),
	}
}
