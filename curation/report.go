package curation

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// StatusReport renders the human-readable curation status for a session: the
// token total, prune counts by strategy, and stored extract summaries. The
// collector stats are optional; pass nil when the external collector is
// unreachable. Pure read, no mutation.
func StatusReport(state *SessionState, collected *CollectorStats) string {
	var sb strings.Builder

	stats := state.Stats()
	fmt.Fprintf(&sb, "## Context curation — session %s\n\n", state.SessionID)
	fmt.Fprintf(&sb, "- Tracked tool calls: %d\n", len(state.RecordIDs()))
	fmt.Fprintf(&sb, "- Pruned: %d\n", len(state.PrunedIDs()))
	fmt.Fprintf(&sb, "- Tokens saved: %d\n", stats.TotalPruneTokens)
	fmt.Fprintf(&sb, "- Current turn: %d\n", state.CurrentTurn())

	if len(stats.PrunesByStrategy) > 0 {
		sb.WriteString("\n### Prunes by strategy\n\n")
		names := make([]string, 0, len(stats.PrunesByStrategy))
		for name := range stats.PrunesByStrategy {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&sb, "- %s: %d\n", name, stats.PrunesByStrategy[name])
		}
	}

	if n := state.SummaryCount(); n > 0 {
		fmt.Fprintf(&sb, "\n### Extracted summaries: %d\n", n)
	}

	if collected != nil {
		sb.WriteString("\n### Collector (all time)\n\n")
		fmt.Fprintf(&sb, "- Prune events: %d\n", collected.PruneEvents)
		fmt.Fprintf(&sb, "- Extract events: %d\n", collected.ExtractEvents)
		fmt.Fprintf(&sb, "- Tokens saved: %d\n", collected.TotalTokensSaved)
	}

	return sb.String()
}

// htmlPolicy keeps the rendered report safe to embed in a host web UI. The
// UGC policy allows formatting tags and strips scripts and event handlers.
var htmlPolicy = bluemonday.UGCPolicy()

// StatusHTML converts a markdown status report into sanitized HTML for hosts
// that embed the report in a web view.
func StatusHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", WrapError("StatusHTML", err)
	}
	return htmlPolicy.Sanitize(buf.String()), nil
}
