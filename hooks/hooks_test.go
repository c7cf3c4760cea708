package hooks

import (
	"context"
	"errors"
	"testing"
)

func TestTriggerPruneOrder(t *testing.T) {
	r := NewRegistry()

	var calls []string
	r.OnPrune(func(ctx context.Context, event *PruneEvent) error {
		calls = append(calls, "first")
		return nil
	})
	r.OnPrune(func(ctx context.Context, event *PruneEvent) error {
		calls = append(calls, "second")
		return nil
	})

	event := &PruneEvent{SessionID: "s1", Strategy: "deduplication", ToolIDs: []string{"c1"}}
	if err := r.TriggerPrune(context.Background(), event); err != nil {
		t.Fatalf("TriggerPrune() error: %v", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("hooks ran as %v, want registration order", calls)
	}
}

func TestTriggerStopsOnError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")

	ran := false
	r.OnPrune(func(ctx context.Context, event *PruneEvent) error {
		return boom
	})
	r.OnPrune(func(ctx context.Context, event *PruneEvent) error {
		ran = true
		return nil
	})

	err := r.TriggerPrune(context.Background(), &PruneEvent{})
	if !errors.Is(err, boom) {
		t.Errorf("TriggerPrune() error = %v, want boom", err)
	}
	if ran {
		t.Error("hooks after a failing hook must not run")
	}
}

func TestTriggerExtract(t *testing.T) {
	r := NewRegistry()

	var got *ExtractEvent
	r.OnExtract(func(ctx context.Context, event *ExtractEvent) error {
		got = event
		return nil
	})

	event := &ExtractEvent{SessionID: "s1", ToolID: "c1", Summary: "gist"}
	if err := r.TriggerExtract(context.Background(), event); err != nil {
		t.Fatalf("TriggerExtract() error: %v", err)
	}
	if got == nil || got.ToolID != "c1" || got.Summary != "gist" {
		t.Errorf("hook received %+v", got)
	}
}

func TestTriggerTurn(t *testing.T) {
	r := NewRegistry()

	var got *TurnEvent
	r.OnTurn(func(ctx context.Context, event *TurnEvent) error {
		got = event
		return nil
	})

	event := &TurnEvent{SessionID: "s1", Turn: 3, PrunedTotal: 5, TokensSaved: 100}
	if err := r.TriggerTurn(context.Background(), event); err != nil {
		t.Fatalf("TriggerTurn() error: %v", err)
	}
	if got == nil || got.Turn != 3 || got.PrunedTotal != 5 {
		t.Errorf("hook received %+v", got)
	}
}

func TestTriggerWithNoHooks(t *testing.T) {
	r := NewRegistry()
	if err := r.TriggerPrune(context.Background(), &PruneEvent{}); err != nil {
		t.Errorf("empty registry should trigger cleanly: %v", err)
	}
	if err := r.TriggerExtract(context.Background(), &ExtractEvent{}); err != nil {
		t.Errorf("empty registry should trigger cleanly: %v", err)
	}
	if err := r.TriggerTurn(context.Background(), &TurnEvent{}); err != nil {
		t.Errorf("empty registry should trigger cleanly: %v", err)
	}
}

func TestMetricsHooks(t *testing.T) {
	type metric struct {
		name  string
		value float64
	}
	var metrics []metric

	r := NewRegistry()
	NewMetricsHooks(func(name string, value float64, tags map[string]string) {
		metrics = append(metrics, metric{name, value})
	}).Register(r)

	r.TriggerPrune(context.Background(), &PruneEvent{
		Strategy: "deduplication", ToolIDs: []string{"a", "b"}, TokensSaved: 40,
	})
	r.TriggerTurn(context.Background(), &TurnEvent{PrunedTotal: 2})

	if len(metrics) != 3 {
		t.Fatalf("got %d metrics, want 3", len(metrics))
	}
	if metrics[0].name != "curation.pruned" || metrics[0].value != 2 {
		t.Errorf("first metric = %+v", metrics[0])
	}
	if metrics[1].name != "curation.tokens_saved" || metrics[1].value != 40 {
		t.Errorf("second metric = %+v", metrics[1])
	}
}
