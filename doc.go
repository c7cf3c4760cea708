// Package ctxprune prunes stale tool outputs from a conversational agent's
// context window.
//
// An Engine watches a session's message history and removes tool call
// outputs that no longer carry information: repeated identical calls where
// only the latest result matters, file writes whose content a later read
// already reflects, and old errors the agent has moved past. Two optional
// agent-facing tools, discard and extract, let the model curate its own
// context. Pruning is virtual: the engine never mutates the host's stored
// messages, it only transforms the view sent to the model, so every decision
// is recoverable from the original history.
//
// The host drives the engine once per turn:
//
//	result := engine.TransformMessages(ctx, sessionID, messages)
//	// send result.Messages to the model
//
// Per-session state is in-memory and rebuilt from the observed history, so a
// restarted host converges to the same prune set after replaying a session.
package ctxprune
