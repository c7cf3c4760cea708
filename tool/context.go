package tool

import (
	"context"
)

type contextKey string

const sessionIDKey contextKey = "ctxprune_session_id"

// WithSessionID attaches the session id to the context. The host (or the
// engine's hook glue) calls this before executing a curation tool so the
// tool can resolve the session's state.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionIDFrom extracts the session id from the context. Returns false if
// the context was not enriched with session information.
func SessionIDFrom(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionIDKey).(string)
	return sessionID, ok && sessionID != ""
}
