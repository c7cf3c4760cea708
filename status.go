package ctxprune

import (
	"context"

	"github.com/ctxprune/ctxprune/curation"
)

const discardPrompt = `You have a "discard" tool. Tool outputs you no longer need stay in your
context and crowd out useful information. When an output has served its
purpose, call discard with its tool call ids to remove it.`

const extractPrompt = `You have an "extract" tool. When a long tool output contains only a few
facts worth keeping, call extract with the tool call id and a concise
summary; the summary replaces the full output in your context.`

// SystemPrompt returns instructional text describing the enabled manual
// curation tools, for appending to the host agent's system prompt. Empty when
// no manual tool is enabled.
func (e *Engine) SystemPrompt() string {
	if !e.config.Enabled {
		return ""
	}
	var prompt string
	if e.config.Tools.Discard.Enabled {
		prompt = discardPrompt
	}
	if e.config.Tools.Extract.Enabled {
		if prompt != "" {
			prompt += "\n\n"
		}
		prompt += extractPrompt
	}
	return prompt
}

// Status renders the markdown curation report for a session. Collector stats
// are included best-effort; an unreachable collector degrades the report
// rather than failing it.
func (e *Engine) Status(ctx context.Context, sessionID string) string {
	state, ok := e.sessions.Peek(sessionID)
	if !ok {
		return "No curation state for session " + sessionID + ".\n"
	}

	var collected *curation.CollectorStats
	if stats, err := e.collector.Stats(ctx, sessionID); err == nil {
		collected = stats
	} else if e.config.Debug {
		e.logger.Printf("[ctxprune] collector stats failed: %v", err)
	}

	return curation.StatusReport(state, collected)
}

// StatusHTML renders the curation report as sanitized HTML.
func (e *Engine) StatusHTML(ctx context.Context, sessionID string) (string, error) {
	return curation.StatusHTML(e.Status(ctx, sessionID))
}
