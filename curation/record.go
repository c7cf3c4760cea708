package curation

import (
	"time"

	"github.com/ctxprune/ctxprune/types"
)

// ToolCallRecord is the engine's per-call bookkeeping entry. One record exists
// for every tool call ever seen in a session. Records are created when a call
// is first observed and retained for the life of the session, even after the
// call has been pruned from the rendered context, so that later strategies
// and the manual tools can still reference it.
type ToolCallRecord struct {
	// ID is the host-assigned call identifier, stable for the session.
	ID string

	// Tool is the tool name.
	Tool string

	// Parameters are the arguments as submitted to the tool.
	Parameters map[string]any

	// Turn is the ordinal conversation turn in which the call occurred.
	Turn int

	// Timestamp is the call creation time.
	Timestamp time.Time

	// Status and Error carry the call outcome. Status "error" or a
	// non-empty Error marks a failed call.
	Status string
	Error  string
}

// Failed reports whether the call ended in an error.
func (r *ToolCallRecord) Failed() bool {
	return r.Status == types.StatusError || r.Error != ""
}
