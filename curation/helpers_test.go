package curation

import (
	"time"

	"github.com/ctxprune/ctxprune/types"
)

// Test helpers shared by the strategy tests. Messages are built with
// monotonically later timestamps so compaction-boundary checks behave.

var testClock = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

func nextTime() time.Time {
	testClock = testClock.Add(time.Minute)
	return testClock
}

func userMsg(text string) *types.Message {
	return &types.Message{
		Role:      types.RoleUser,
		Parts:     []types.Part{{Kind: types.PartKindText, Text: text}},
		CreatedAt: nextTime(),
	}
}

func toolMsg(callID, tool string, input map[string]any, output string) *types.Message {
	return &types.Message{
		Role: types.RoleAssistant,
		Parts: []types.Part{{
			Kind:   types.PartKindTool,
			CallID: callID,
			Tool:   tool,
			Input:  input,
			Output: output,
			Status: types.StatusCompleted,
		}},
		CreatedAt: nextTime(),
	}
}

func failedToolMsg(callID, tool string, input map[string]any, errMsg string) *types.Message {
	return &types.Message{
		Role: types.RoleAssistant,
		Parts: []types.Part{{
			Kind:   types.PartKindTool,
			CallID: callID,
			Tool:   tool,
			Input:  input,
			Status: types.StatusError,
			Error:  errMsg,
		}},
		CreatedAt: nextTime(),
	}
}

// observedState builds a session state that has seen the given history.
func observedState(messages []*types.Message) *SessionState {
	state := NewSessionState("test-session", "")
	state.SetTurn(CountTurns(messages))
	ObserveMessages(state, messages)
	return state
}

func mustCompile(patterns []string) *PatternSet {
	set, err := CompilePatterns(patterns)
	if err != nil {
		panic(err)
	}
	return set
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
