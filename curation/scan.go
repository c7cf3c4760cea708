package curation

import (
	"time"

	"github.com/ctxprune/ctxprune/types"
)

// EnumerateToolIDs returns the call ids of every tool part in messages, in
// chronological order. Messages timestamped at or before the session's last
// compaction are skipped; they belong to an archived prefix the engine no
// longer curates. Each tool part contributes one id, so a call id repeated
// across messages is preserved.
func EnumerateToolIDs(state *SessionState, messages []*types.Message) []string {
	var ids []string
	for _, msg := range messages {
		if skipCompacted(state, msg) {
			continue
		}
		for _, part := range msg.Parts {
			if part.IsToolCall() {
				ids = append(ids, part.CallID)
			}
		}
	}
	return ids
}

// ObserveMessages creates ToolCallRecords for tool calls seen for the first
// time and returns the number of new records. Each record's turn is the
// ordinal turn the call occurred in, derived while walking the history with
// the same one-turn-per-user-message rule CountTurns uses, so a cold engine
// observing an existing multi-turn history attributes old calls to their
// original turns. The timestamp is the containing message's creation time
// when the host supplies one.
func ObserveMessages(state *SessionState, messages []*types.Message) int {
	created := 0
	turn := 0
	for _, msg := range messages {
		if msg.Role == types.RoleUser {
			turn++
		}
		if skipCompacted(state, msg) {
			continue
		}
		for _, part := range msg.Parts {
			if !part.IsToolCall() {
				continue
			}
			ts := msg.CreatedAt
			if ts.IsZero() {
				ts = time.Now()
			}
			rec := &ToolCallRecord{
				ID:         part.CallID,
				Tool:       part.Tool,
				Parameters: part.Input,
				Turn:       turn,
				Timestamp:  ts,
				Status:     part.Status,
				Error:      part.Error,
			}
			if state.Observe(rec) {
				created++
			}
		}
	}
	return created
}

// CountTurns derives the turn ordinal from the message history: one turn per
// user message. Deriving instead of counting invocations keeps the
// orchestration idempotent when the host re-delivers an unchanged history.
func CountTurns(messages []*types.Message) int {
	turns := 0
	for _, msg := range messages {
		if msg.Role == types.RoleUser {
			turns++
		}
	}
	return turns
}

func skipCompacted(state *SessionState, msg *types.Message) bool {
	last := state.LastCompaction()
	return !last.IsZero() && !msg.CreatedAt.After(last)
}
