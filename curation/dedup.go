package curation

import (
	"github.com/ctxprune/ctxprune/types"
)

// DedupStrategy prunes every tool call that is an exact duplicate of a later
// call to the same tool with the same normalized parameters. The most recent
// occurrence is kept because it reflects the freshest observed state.
type DedupStrategy struct {
	protectedTools map[string]struct{}
	protected      *PatternSet
	estimate       Estimator
}

// NewDedupStrategy creates the deduplication strategy. Calls to tools in
// protectedTools and calls touching a protected resource path are never
// pruned.
func NewDedupStrategy(protectedTools []string, protected *PatternSet, estimate Estimator) *DedupStrategy {
	set := make(map[string]struct{}, len(protectedTools))
	for _, tool := range protectedTools {
		set[tool] = struct{}{}
	}
	return &DedupStrategy{
		protectedTools: set,
		protected:      protected,
		estimate:       estimate,
	}
}

// Name implements Strategy.
func (s *DedupStrategy) Name() string {
	return StrategyDeduplication
}

// Apply implements Strategy. Previously pruned calls are excluded up front,
// so a duplicate group that was already collapsed produces no new prunes on
// a re-run.
func (s *DedupStrategy) Apply(state *SessionState, messages []*types.Message) *StrategyResult {
	type candidate struct {
		id  string
		sig string
	}

	var candidates []candidate
	seen := make(map[string]struct{})
	lastPos := make(map[string]int)

	for _, id := range EnumerateToolIDs(state, messages) {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if state.IsPruned(id) {
			continue
		}
		rec, ok := state.Record(id)
		if !ok {
			continue
		}
		if _, protected := s.protectedTools[rec.Tool]; protected {
			continue
		}
		if path, ok := ResourcePath(rec.Parameters); ok && s.protected.Match(path) {
			continue
		}

		sig := Signature(rec.Tool, rec.Parameters)
		candidates = append(candidates, candidate{id: id, sig: sig})
		lastPos[sig] = len(candidates) - 1
	}

	var stale []string
	for pos, c := range candidates {
		if lastPos[c.sig] != pos {
			stale = append(stale, c.id)
		}
	}

	return recordPrunes(state, messages, s.Name(), stale, s.estimate)
}
