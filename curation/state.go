package curation

import (
	"strings"
	"time"
)

// Stats accumulates per-session pruning statistics.
type Stats struct {
	// TotalPruneTokens is the estimated token count saved by all prunes so
	// far, including resolved deferred accounting from the discard tool.
	TotalPruneTokens int

	// PrunesByStrategy counts newly pruned calls per strategy name.
	PrunesByStrategy map[string]int
}

// SessionState is the per-session mutable record owned by the engine. One
// instance exists per active session; the host serializes all calls touching
// a given session, so SessionState itself carries no locking.
//
// Two invariants hold at all times:
//
//   - the prune set is monotonic: ids are never removed and appear at most once;
//   - every pruned id has a corresponding ToolCallRecord.
//
// Both are enforced by MarkPruned, the only path into the prune set.
type SessionState struct {
	// SessionID and Variant identify the session for reporting only.
	SessionID string
	Variant   string

	records map[string]*ToolCallRecord
	order   []string // record insertion order = discovery order

	pruned    []string
	prunedSet map[string]struct{}

	pendingTokenCalc []string

	summaries map[string]string

	stats Stats

	currentTurn    int
	lastCompaction time.Time
}

// NewSessionState creates the state for a fresh session.
func NewSessionState(sessionID, variant string) *SessionState {
	return &SessionState{
		SessionID: sessionID,
		Variant:   variant,
		records:   make(map[string]*ToolCallRecord),
		prunedSet: make(map[string]struct{}),
		summaries: make(map[string]string),
		stats: Stats{
			PrunesByStrategy: make(map[string]int),
		},
	}
}

// Observe inserts a record for a newly seen tool call. Existing records are
// never replaced; if the stored record has no outcome yet and the observed
// one does, the outcome is filled in once. Returns true if a new record was
// created.
func (s *SessionState) Observe(rec *ToolCallRecord) bool {
	if rec == nil || rec.ID == "" {
		return false
	}
	if existing, ok := s.records[rec.ID]; ok {
		if existing.Status == "" && existing.Error == "" {
			existing.Status = rec.Status
			existing.Error = rec.Error
		}
		return false
	}
	s.records[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	return true
}

// Record returns the record for a call id.
func (s *SessionState) Record(id string) (*ToolCallRecord, bool) {
	rec, ok := s.records[id]
	return rec, ok
}

// Has reports whether a record exists for the call id.
func (s *SessionState) Has(id string) bool {
	_, ok := s.records[id]
	return ok
}

// RecordIDs returns all known call ids in discovery order.
func (s *SessionState) RecordIDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// IsPruned reports whether the call id is in the prune set.
func (s *SessionState) IsPruned(id string) bool {
	_, ok := s.prunedSet[id]
	return ok
}

// PrunedIDs returns the prune set in marking order.
func (s *SessionState) PrunedIDs() []string {
	ids := make([]string, len(s.pruned))
	copy(ids, s.pruned)
	return ids
}

// MarkPruned appends ids to the prune set on behalf of the named strategy and
// returns the ids that were newly pruned. Ids without a record and ids
// already pruned are skipped, which keeps the prune set monotonic and
// referentially intact. The strategy's prune count grows by the number of
// newly pruned ids.
func (s *SessionState) MarkPruned(strategy string, ids ...string) []string {
	var newly []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := s.records[id]; !ok {
			continue
		}
		if _, ok := s.prunedSet[id]; ok {
			continue
		}
		s.prunedSet[id] = struct{}{}
		s.pruned = append(s.pruned, id)
		newly = append(newly, id)
	}
	if len(newly) > 0 {
		s.stats.PrunesByStrategy[strategy] += len(newly)
	}
	return newly
}

// AddPruneTokens folds a token saving into the running total.
func (s *SessionState) AddPruneTokens(n int) {
	if n > 0 {
		s.stats.TotalPruneTokens += n
	}
}

// EnqueuePendingTokens defers token accounting for ids whose cost cannot be
// computed yet (the discard tool lacks the message list at execution time).
func (s *SessionState) EnqueuePendingTokens(ids ...string) {
	s.pendingTokenCalc = append(s.pendingTokenCalc, ids...)
}

// DrainPendingTokens returns and clears the deferred accounting queue.
func (s *SessionState) DrainPendingTokens() []string {
	pending := s.pendingTokenCalc
	s.pendingTokenCalc = nil
	return pending
}

// PendingTokenCount returns the number of ids awaiting token accounting.
func (s *SessionState) PendingTokenCount() int {
	return len(s.pendingTokenCalc)
}

// SetSummary stores the trimmed extract summary for a call, replacing any
// prior summary.
func (s *SessionState) SetSummary(id, summary string) {
	s.summaries[id] = strings.TrimSpace(summary)
}

// Summary returns the stored extract summary for a call, if any.
func (s *SessionState) Summary(id string) (string, bool) {
	summary, ok := s.summaries[id]
	return summary, ok
}

// SummaryCount returns the number of stored extract summaries.
func (s *SessionState) SummaryCount() int {
	return len(s.summaries)
}

// Stats returns a copy of the accumulated statistics.
func (s *SessionState) Stats() Stats {
	byStrategy := make(map[string]int, len(s.stats.PrunesByStrategy))
	for name, count := range s.stats.PrunesByStrategy {
		byStrategy[name] = count
	}
	return Stats{
		TotalPruneTokens: s.stats.TotalPruneTokens,
		PrunesByStrategy: byStrategy,
	}
}

// CurrentTurn returns the session's current turn ordinal.
func (s *SessionState) CurrentTurn() int {
	return s.currentTurn
}

// SetTurn advances the turn ordinal. Turns never move backwards; a smaller
// value is ignored so that replaying an unchanged history is a no-op.
func (s *SessionState) SetTurn(turn int) {
	if turn > s.currentTurn {
		s.currentTurn = turn
	}
}

// LastCompaction returns the timestamp bounding strategy scans. Calls at or
// before this time belong to an already-compacted prefix of the conversation.
func (s *SessionState) LastCompaction() time.Time {
	return s.lastCompaction
}

// SetLastCompaction records an external compaction event.
func (s *SessionState) SetLastCompaction(t time.Time) {
	if t.After(s.lastCompaction) {
		s.lastCompaction = t
	}
}
