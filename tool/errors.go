package tool

import (
	"errors"
)

// Sentinel errors for tool registration and dispatch.
var (
	// ErrToolNotFound indicates an execute request for an unregistered tool.
	ErrToolNotFound = errors.New("tool not found")

	// ErrInvalidInput indicates tool input that failed schema validation.
	ErrInvalidInput = errors.New("invalid tool input")

	// ErrMissingSession indicates a tool executed without a session id in
	// its context.
	ErrMissingSession = errors.New("no session id in context")
)
