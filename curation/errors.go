package curation

import (
	"errors"
	"fmt"
)

// Sentinel errors for curation operations.
var (
	// ErrInvalidConfig indicates invalid engine configuration.
	ErrInvalidConfig = errors.New("invalid curation configuration")

	// ErrNoToolIDs indicates a request that named no tool call ids.
	ErrNoToolIDs = errors.New("no tool ids supplied")

	// ErrNoMatchingCalls indicates none of the supplied ids are known to
	// the session.
	ErrNoMatchingCalls = errors.New("no matching tool calls")

	// ErrEmptyToolID indicates a blank tool call id.
	ErrEmptyToolID = errors.New("tool id is empty")

	// ErrEmptySummary indicates a blank or whitespace-only summary.
	ErrEmptySummary = errors.New("summary is empty")

	// ErrUnknownCall indicates a tool call id with no session record.
	ErrUnknownCall = errors.New("unknown tool call")
)

// CurationError provides structured error context for curation operations.
type CurationError struct {
	// Op is the operation that failed (e.g., "Transform", "Discard")
	Op string

	// SessionID is the session ID if applicable
	SessionID string

	// Err is the underlying error
	Err error

	// Context holds additional key-value pairs for debugging
	Context map[string]any
}

// Error returns a formatted error message.
func (e *CurationError) Error() string {
	msg := fmt.Sprintf("curation %s failed", e.Op)
	if e.SessionID != "" {
		msg += fmt.Sprintf(" for session %s", e.SessionID)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *CurationError) Unwrap() error {
	return e.Err
}

// NewCurationError creates a new CurationError with the given operation and
// underlying error.
func NewCurationError(op string, err error) *CurationError {
	return &CurationError{
		Op:      op,
		Err:     err,
		Context: make(map[string]any),
	}
}

// WithSession sets the session ID on the error and returns it for chaining.
func (e *CurationError) WithSession(sessionID string) *CurationError {
	e.SessionID = sessionID
	return e
}

// WithContext adds a key-value pair to the error context and returns the
// error for chaining.
func (e *CurationError) WithContext(key string, value any) *CurationError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WrapError wraps an error with operation context. If err is nil, returns nil.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return NewCurationError(op, err)
}
