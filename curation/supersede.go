package curation

import (
	"github.com/ctxprune/ctxprune/types"
)

// SupersedeWritesStrategy prunes a write to a resource once a later read of
// the same resource exists: the read is taken to reflect the resource's
// current state, which makes the write's input payload redundant in context.
//
// The read-reflects-write assumption is a deliberate trade-off. A resource
// modified outside the tracked write/read pair is invisible to this
// strategy, and that is accepted rather than worked around.
type SupersedeWritesStrategy struct {
	writeTools map[string]struct{}
	readTools  map[string]struct{}
	protected  *PatternSet
	estimate   Estimator
}

// NewSupersedeWritesStrategy creates the supersession strategy with the
// given write-class and read-class tool names.
func NewSupersedeWritesStrategy(writeTools, readTools []string, protected *PatternSet, estimate Estimator) *SupersedeWritesStrategy {
	writes := make(map[string]struct{}, len(writeTools))
	for _, tool := range writeTools {
		writes[tool] = struct{}{}
	}
	reads := make(map[string]struct{}, len(readTools))
	for _, tool := range readTools {
		reads[tool] = struct{}{}
	}
	return &SupersedeWritesStrategy{
		writeTools: writes,
		readTools:  reads,
		protected:  protected,
		estimate:   estimate,
	}
}

// Name implements Strategy.
func (s *SupersedeWritesStrategy) Name() string {
	return StrategySupersedeWrites
}

// Apply implements Strategy. Every write is evaluated independently against
// all reads of its resource, so multiple writes to the same path may each be
// pruned when a qualifying later read exists.
func (s *SupersedeWritesStrategy) Apply(state *SessionState, messages []*types.Message) *StrategyResult {
	type writeCall struct {
		id   string
		path string
		pos  int
	}

	var writes []writeCall
	lastRead := make(map[string]int) // path -> highest read position + 1

	for pos, id := range EnumerateToolIDs(state, messages) {
		if state.IsPruned(id) {
			continue
		}
		rec, ok := state.Record(id)
		if !ok {
			continue
		}
		path, ok := ResourcePath(rec.Parameters)
		if !ok || s.protected.Match(path) {
			continue
		}

		if _, isWrite := s.writeTools[rec.Tool]; isWrite {
			writes = append(writes, writeCall{id: id, path: path, pos: pos})
			continue
		}
		if _, isRead := s.readTools[rec.Tool]; isRead {
			if pos+1 > lastRead[path] {
				lastRead[path] = pos + 1
			}
		}
	}

	// A write is superseded when any read of its path sits at a strictly
	// later chronological position. Writes were collected in order, so the
	// prune set stays chronological.
	var superseded []string
	for _, w := range writes {
		if lastRead[w.path] > w.pos+1 {
			superseded = append(superseded, w.id)
		}
	}

	return recordPrunes(state, messages, s.Name(), superseded, s.estimate)
}
