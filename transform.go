package ctxprune

import (
	"context"
	"encoding/json"

	"github.com/ctxprune/ctxprune/curation"
	"github.com/ctxprune/ctxprune/hooks"
	"github.com/ctxprune/ctxprune/types"
)

// PrunableCall is a hint surfaced to the agent: a call whose output is still
// in context but could be discarded manually.
type PrunableCall struct {
	ID     string `json:"id"`
	Tool   string `json:"tool"`
	Tokens int    `json:"tokens"`
}

// TransformResult is the outcome of one orchestration pass.
type TransformResult struct {
	// Messages is the redacted view to render: every pruned tool part has
	// its payload replaced by a redaction marker (or the stored extract
	// summary). The host's original messages are never mutated.
	Messages []*types.Message

	// Prunable lists unpruned calls the agent may discard manually. Empty
	// when the discard tool is disabled.
	Prunable []PrunableCall

	// PrunedCount is the session's total prune-set size after this pass.
	PrunedCount int

	// TokensSaved is the token cost newly accounted during this pass,
	// including resolved deferred accounting from earlier discards.
	TokensSaved int
}

// TransformMessages runs the per-turn orchestration sequence over a
// materialized message history: observe new tool calls, run each enabled
// strategy in fixed order, resolve deferred token accounting, and build the
// redacted view. It never fails the host's turn; a degraded pass simply
// prunes nothing.
func (e *Engine) TransformMessages(ctx context.Context, sessionID string, messages []*types.Message) *TransformResult {
	if !e.config.Enabled {
		return &TransformResult{Messages: messages}
	}

	state := e.sessions.Session(sessionID)
	state.SetTurn(curation.CountTurns(messages))
	curation.ObserveMessages(state, messages)

	tokensSaved := 0
	for _, strategy := range e.strategies {
		res := strategy.Apply(state, messages)
		if len(res.PrunedIDs) == 0 {
			continue
		}
		tokensSaved += res.TokensSaved
		e.track(sessionID, res.PrunedIDs, res.TokensSaved, strategy.Name())
		if err := e.hooks.TriggerPrune(ctx, &hooks.PruneEvent{
			SessionID:   sessionID,
			Strategy:    strategy.Name(),
			ToolIDs:     res.PrunedIDs,
			TokensSaved: res.TokensSaved,
		}); err != nil {
			e.logger.Printf("[ctxprune] prune hook failed: %v", err)
		}
	}

	// Discarded ids queued by the tool are costed here, where the message
	// list is available.
	if pending := state.DrainPendingTokens(); len(pending) > 0 {
		tokens := curation.EstimateTokens(state, messages, pending, e.estimate)
		state.AddPruneTokens(tokens)
		tokensSaved += tokens
		e.track(sessionID, pending, tokens, curation.StrategyDiscard)
	}

	result := &TransformResult{
		Messages:    e.redact(state, messages),
		Prunable:    e.prunableCalls(state, messages),
		PrunedCount: len(state.PrunedIDs()),
		TokensSaved: tokensSaved,
	}

	if err := e.hooks.TriggerTurn(ctx, &hooks.TurnEvent{
		SessionID:   sessionID,
		Turn:        state.CurrentTurn(),
		PrunedTotal: result.PrunedCount,
		TokensSaved: tokensSaved,
	}); err != nil {
		e.logger.Printf("[ctxprune] turn hook failed: %v", err)
	}

	return result
}

// RunTurn fetches the session's history from the configured source and runs
// TransformMessages. A fetch failure is logged and treated as an empty
// history so the strategies degrade to no-ops.
func (e *Engine) RunTurn(ctx context.Context, sessionID string) *TransformResult {
	var messages []*types.Message
	if e.source != nil {
		fetched, err := e.source.Messages(ctx, sessionID)
		if err != nil {
			e.logger.Printf("[ctxprune] message fetch failed for session %s: %v", sessionID, err)
		} else {
			messages = fetched
		}
	}
	return e.TransformMessages(ctx, sessionID, messages)
}

// redact builds the rendered view: a deep copy of messages with every pruned
// tool part's payload replaced. Extracted calls show their stored summary,
// everything else a plain redaction marker.
func (e *Engine) redact(state *curation.SessionState, messages []*types.Message) []*types.Message {
	out := make([]*types.Message, len(messages))
	for i, msg := range messages {
		cp := *msg
		cp.Parts = make([]types.Part, len(msg.Parts))
		copy(cp.Parts, msg.Parts)

		for j := range cp.Parts {
			part := &cp.Parts[j]
			if !part.IsToolCall() || !state.IsPruned(part.CallID) {
				continue
			}
			if summary, ok := state.Summary(part.CallID); ok && summary != "" {
				part.Output = "[tool output replaced by summary: " + summary + "]"
			} else {
				part.Output = "[tool output pruned: " + part.CallID + "]"
			}
			part.Input = nil
			part.Error = ""
		}
		out[i] = &cp
	}
	return out
}

// prunableCalls lists the calls the agent could usefully discard: unpruned,
// unprotected, and either the kept survivor of a duplicate group or stale
// (made in an earlier turn than the current one). A fresh singleton from the
// current turn is likely still in use and is not suggested. Only computed
// when the discard tool is enabled, since the hint is actionable only
// through it.
func (e *Engine) prunableCalls(state *curation.SessionState, messages []*types.Message) []PrunableCall {
	if !e.config.Tools.Discard.Enabled {
		return nil
	}

	type candidate struct {
		id  string
		rec *curation.ToolCallRecord
		sig string
	}

	seen := make(map[string]struct{})
	// Signature counts include already-pruned occurrences, so the survivor
	// of a collapsed duplicate group stays flagged.
	sigCount := make(map[string]int)
	var candidates []candidate

	for _, id := range curation.EnumerateToolIDs(state, messages) {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		rec, ok := state.Record(id)
		if !ok {
			continue
		}
		sig := curation.Signature(rec.Tool, rec.Parameters)
		sigCount[sig]++

		if state.IsPruned(id) {
			continue
		}
		if path, ok := curation.ResourcePath(rec.Parameters); ok && e.protected.Match(path) {
			continue
		}
		candidates = append(candidates, candidate{id: id, rec: rec, sig: sig})
	}

	var calls []PrunableCall
	for _, c := range candidates {
		if sigCount[c.sig] < 2 && c.rec.Turn >= state.CurrentTurn() {
			continue
		}
		calls = append(calls, PrunableCall{
			ID:     c.id,
			Tool:   c.rec.Tool,
			Tokens: curation.EstimateTokens(state, messages, []string{c.id}, e.estimate),
		})
	}
	return calls
}

func parseExtractInput(input []byte) (id, summary string) {
	var params struct {
		ToolID  string `json:"tool_id"`
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return "", ""
	}
	return params.ToolID, params.Summary
}
