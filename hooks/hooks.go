// Package hooks provides observer callbacks for curation events. Hosts and
// embedding applications register hooks to watch pruning decisions without
// participating in them; hook errors are reported to the caller but never
// alter engine state.
package hooks

import (
	"context"
	"sync"
)

// PruneEvent describes one batch of calls added to the prune set.
type PruneEvent struct {
	SessionID   string
	Strategy    string
	ToolIDs     []string
	TokensSaved int
}

// ExtractEvent describes one stored extract summary.
type ExtractEvent struct {
	SessionID string
	ToolID    string
	Summary   string
}

// TurnEvent describes the outcome of one orchestration pass.
type TurnEvent struct {
	SessionID   string
	Turn        int
	PrunedTotal int
	TokensSaved int
}

// PruneHook is called after a strategy or tool prunes calls.
type PruneHook func(ctx context.Context, event *PruneEvent) error

// ExtractHook is called after the extract tool stores a summary.
type ExtractHook func(ctx context.Context, event *ExtractEvent) error

// TurnHook is called at the end of each orchestration pass.
type TurnHook func(ctx context.Context, event *TurnEvent) error

// Registry holds all registered hooks.
type Registry struct {
	mu      sync.RWMutex
	prune   []PruneHook
	extract []ExtractHook
	turn    []TurnHook
}

// NewRegistry creates a new hook registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// OnPrune registers a hook called after each prune batch.
func (r *Registry) OnPrune(hook PruneHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune = append(r.prune, hook)
}

// OnExtract registers a hook called after each extract.
func (r *Registry) OnExtract(hook ExtractHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extract = append(r.extract, hook)
}

// OnTurn registers a hook called after each orchestration pass.
func (r *Registry) OnTurn(hook TurnHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turn = append(r.turn, hook)
}

// TriggerPrune calls all registered prune hooks in registration order.
func (r *Registry) TriggerPrune(ctx context.Context, event *PruneEvent) error {
	r.mu.RLock()
	hooks := make([]PruneHook, len(r.prune))
	copy(hooks, r.prune)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// TriggerExtract calls all registered extract hooks in registration order.
func (r *Registry) TriggerExtract(ctx context.Context, event *ExtractEvent) error {
	r.mu.RLock()
	hooks := make([]ExtractHook, len(r.extract))
	copy(hooks, r.extract)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// TriggerTurn calls all registered turn hooks in registration order.
func (r *Registry) TriggerTurn(ctx context.Context, event *TurnEvent) error {
	r.mu.RLock()
	hooks := make([]TurnHook, len(r.turn))
	copy(hooks, r.turn)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
