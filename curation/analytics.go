package curation

import (
	"context"
)

// CollectorStats is the aggregate view an external collector keeps per
// session.
type CollectorStats struct {
	// PruneEvents counts reported prune batches (all strategies and the
	// discard tool).
	PruneEvents int

	// ExtractEvents counts reported extract-tool prunes.
	ExtractEvents int

	// TotalTokensSaved sums the reported token savings.
	TotalTokensSaved int
}

// Collector is the external analytics contract. Both calls are best-effort:
// the engine wraps every invocation so a failing collector can never fail,
// block, or delay a turn.
type Collector interface {
	// TrackPrune records one prune batch for a session.
	TrackPrune(ctx context.Context, sessionID string, toolIDs []string, tokensSaved int, strategy string) error

	// Stats returns the session's aggregate prune statistics, used only
	// for display.
	Stats(ctx context.Context, sessionID string) (*CollectorStats, error)
}

// NopCollector discards every event. It is the default collector and the one
// to inject in tests.
type NopCollector struct{}

// TrackPrune implements Collector.
func (NopCollector) TrackPrune(ctx context.Context, sessionID string, toolIDs []string, tokensSaved int, strategy string) error {
	return nil
}

// Stats implements Collector.
func (NopCollector) Stats(ctx context.Context, sessionID string) (*CollectorStats, error) {
	return &CollectorStats{}, nil
}
