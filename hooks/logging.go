package hooks

import (
	"context"
	"log"
	"strings"
)

// LoggingHooks provides built-in logging hooks for observability.
type LoggingHooks struct {
	logger *log.Logger
}

// NewLoggingHooks creates logging hooks with the provided logger.
func NewLoggingHooks(logger *log.Logger) *LoggingHooks {
	return &LoggingHooks{logger: logger}
}

// DefaultLoggingHooks creates logging hooks with the default logger.
func DefaultLoggingHooks() *LoggingHooks {
	return &LoggingHooks{logger: log.Default()}
}

// Register attaches all logging hooks to a registry.
func (h *LoggingHooks) Register(r *Registry) {
	r.OnPrune(h.Prune)
	r.OnExtract(h.Extract)
	r.OnTurn(h.Turn)
}

// Prune logs each prune batch.
func (h *LoggingHooks) Prune(ctx context.Context, event *PruneEvent) error {
	h.logger.Printf("[ctxprune] %s pruned %d call(s) in session %s (~%d tokens): %s",
		event.Strategy, len(event.ToolIDs), event.SessionID, event.TokensSaved,
		strings.Join(event.ToolIDs, ", "))
	return nil
}

// Extract logs each stored summary.
func (h *LoggingHooks) Extract(ctx context.Context, event *ExtractEvent) error {
	preview := event.Summary
	if len(preview) > 80 {
		preview = preview[:80] + "..."
	}
	h.logger.Printf("[ctxprune] extracted %s in session %s: %s",
		event.ToolID, event.SessionID, preview)
	return nil
}

// Turn logs the outcome of each orchestration pass.
func (h *LoggingHooks) Turn(ctx context.Context, event *TurnEvent) error {
	h.logger.Printf("[ctxprune] session %s turn %d: %d pruned total, ~%d tokens saved",
		event.SessionID, event.Turn, event.PrunedTotal, event.TokensSaved)
	return nil
}

// MetricsHooks forwards curation events to a metrics callback.
type MetricsHooks struct {
	OnMetric func(name string, value float64, tags map[string]string)
}

// NewMetricsHooks creates metrics collection hooks.
func NewMetricsHooks(onMetric func(string, float64, map[string]string)) *MetricsHooks {
	return &MetricsHooks{OnMetric: onMetric}
}

// Register attaches all metrics hooks to a registry.
func (h *MetricsHooks) Register(r *Registry) {
	r.OnPrune(h.Prune)
	r.OnTurn(h.Turn)
}

// Prune records per-strategy prune metrics.
func (h *MetricsHooks) Prune(ctx context.Context, event *PruneEvent) error {
	tags := map[string]string{"strategy": event.Strategy}
	h.OnMetric("curation.pruned", float64(len(event.ToolIDs)), tags)
	h.OnMetric("curation.tokens_saved", float64(event.TokensSaved), tags)
	return nil
}

// Turn records per-turn totals.
func (h *MetricsHooks) Turn(ctx context.Context, event *TurnEvent) error {
	h.OnMetric("curation.pruned_total", float64(event.PrunedTotal), nil)
	return nil
}
