package curation

import (
	"github.com/ctxprune/ctxprune/types"
)

// PurgeErrorsStrategy ages out failed tool calls. A failed call becomes
// prunable once the configured number of turns has elapsed since the turn it
// failed in.
type PurgeErrorsStrategy struct {
	turnThreshold int
	protected     *PatternSet
	estimate      Estimator
}

// NewPurgeErrorsStrategy creates the error-purging strategy.
func NewPurgeErrorsStrategy(turnThreshold int, protected *PatternSet, estimate Estimator) *PurgeErrorsStrategy {
	return &PurgeErrorsStrategy{
		turnThreshold: turnThreshold,
		protected:     protected,
		estimate:      estimate,
	}
}

// Name implements Strategy.
func (s *PurgeErrorsStrategy) Name() string {
	return StrategyPurgeErrors
}

// Apply implements Strategy. The threshold is inclusive: a call that failed
// exactly turnThreshold turns ago is purged.
func (s *PurgeErrorsStrategy) Apply(state *SessionState, messages []*types.Message) *StrategyResult {
	seen := make(map[string]struct{})
	var aged []string

	for _, id := range EnumerateToolIDs(state, messages) {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if state.IsPruned(id) {
			continue
		}
		rec, ok := state.Record(id)
		if !ok || !rec.Failed() {
			continue
		}
		if path, ok := ResourcePath(rec.Parameters); ok && s.protected.Match(path) {
			continue
		}
		if state.CurrentTurn()-rec.Turn >= s.turnThreshold {
			aged = append(aged, id)
		}
	}

	return recordPrunes(state, messages, s.Name(), aged, s.estimate)
}
