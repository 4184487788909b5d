// Package feed fetches configured sources and produces raw items for the
// digest pipeline. One unreachable or malformed source never aborts a run.
package feed

import (
	"context"
	"time"
)

// RawItem is what a source adapter produces before normalization.
type RawItem struct {
	Title     string
	Link      string
	Published string     // raw timestamp text, may be empty or malformed
	Parsed    *time.Time // set when the source parser already resolved it
	Summary   string
	Source    string
	Weight    float64 // authority weight of the originating source
}

// Source is a single configured feed.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]RawItem, error)
}

// Batch holds one source's items, kept grouped so downstream stages can
// run per source and preserve the configured source order.
type Batch struct {
	Source string
	Items  []RawItem
}
