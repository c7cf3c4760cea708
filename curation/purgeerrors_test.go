package curation

import (
	"testing"

	"github.com/ctxprune/ctxprune/types"
)

func newPurge(threshold int) *PurgeErrorsStrategy {
	return NewPurgeErrorsStrategy(threshold, mustCompile(DefaultProtectedFilePatterns), ApproximateTokens)
}

// errorHistory builds a history where one failed call occurs in turn failedAt
// and user messages continue through currentTurn.
func errorHistory(failed *types.Message, failedAt, currentTurn int) []*types.Message {
	var messages []*types.Message
	for turn := 1; turn <= currentTurn; turn++ {
		messages = append(messages, userMsg("turn"))
		if turn == failedAt {
			messages = append(messages, failed)
		}
	}
	return messages
}

func TestPurgeErrorsAgesOutFailures(t *testing.T) {
	tests := []struct {
		name        string
		failedAt    int
		currentTurn int
		threshold   int
		wantPruned  bool
	}{
		{
			name:        "too recent",
			failedAt:    1,
			currentTurn: 3,
			threshold:   3,
			wantPruned:  false,
		},
		{
			name:        "exactly at threshold",
			failedAt:    1,
			currentTurn: 4,
			threshold:   3,
			wantPruned:  true,
		},
		{
			name:        "well past threshold",
			failedAt:    1,
			currentTurn: 10,
			threshold:   3,
			wantPruned:  true,
		},
		{
			name:        "same turn",
			failedAt:    2,
			currentTurn: 2,
			threshold:   1,
			wantPruned:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failed := failedToolMsg("e1", "read", map[string]any{"path": "missing.go"}, "no such file")
			messages := errorHistory(failed, tt.failedAt, tt.currentTurn)
			state := observedState(messages)

			res := newPurge(tt.threshold).Apply(state, messages)

			pruned := containsID(res.PrunedIDs, "e1")
			if pruned != tt.wantPruned {
				t.Errorf("pruned = %v, want %v (failed at %d, now %d, threshold %d)",
					pruned, tt.wantPruned, tt.failedAt, tt.currentTurn, tt.threshold)
			}
		})
	}
}

// A session observed for the first time with an already aged error in its
// history must still purge it: the record's turn comes from the history walk,
// not from when the engine happened to start watching.
func TestPurgeErrorsColdObservation(t *testing.T) {
	failed := failedToolMsg("e1", "read", map[string]any{"path": "gone.go"}, "no such file")
	messages := errorHistory(failed, 1, 4)

	state := NewSessionState("s1", "")
	state.SetTurn(CountTurns(messages))
	ObserveMessages(state, messages)

	rec, ok := state.Record("e1")
	if !ok {
		t.Fatal("e1 not recorded")
	}
	if rec.Turn != 1 {
		t.Fatalf("record turn = %d, want 1", rec.Turn)
	}

	res := newPurge(3).Apply(state, messages)
	if !containsID(res.PrunedIDs, "e1") {
		t.Errorf("pruned %v, want [e1]: the old failure is past the threshold", res.PrunedIDs)
	}
}

func TestPurgeErrorsIgnoresSuccesses(t *testing.T) {
	ok := toolMsg("c1", "read", map[string]any{"path": "main.go"}, "content")
	messages := errorHistory(ok, 1, 10)
	state := observedState(messages)

	res := newPurge(1).Apply(state, messages)
	if len(res.PrunedIDs) != 0 {
		t.Errorf("pruned %v, successful calls must not be purged", res.PrunedIDs)
	}
}

func TestPurgeErrorsProtectedPathImmune(t *testing.T) {
	failed := failedToolMsg("e1", "read", map[string]any{"path": "certs/server.pem"}, "denied")
	messages := errorHistory(failed, 1, 10)
	state := observedState(messages)

	res := newPurge(1).Apply(state, messages)
	if len(res.PrunedIDs) != 0 {
		t.Errorf("pruned %v, protected path must be immune", res.PrunedIDs)
	}
}

func TestPurgeErrorsRerunPrunesNothingNew(t *testing.T) {
	failed := failedToolMsg("e1", "read", map[string]any{"path": "gone.go"}, "no such file")
	messages := errorHistory(failed, 1, 5)
	state := observedState(messages)
	strategy := newPurge(3)

	first := strategy.Apply(state, messages)
	if len(first.PrunedIDs) != 1 {
		t.Fatalf("first pass pruned %v, want [e1]", first.PrunedIDs)
	}
	second := strategy.Apply(state, messages)
	if len(second.PrunedIDs) != 0 {
		t.Errorf("second pass pruned %v, want nothing", second.PrunedIDs)
	}
}
