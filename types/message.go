package types

import (
	"encoding/json"
	"time"
)

// Role represents the message role
type Role string

const (
	// RoleUser represents a user message
	RoleUser Role = "user"

	// RoleAssistant represents an assistant message
	RoleAssistant Role = "assistant"

	// RoleSystem represents a system message
	RoleSystem Role = "system"
)

// Message is one turn element of the conversation history as materialized by
// the host runtime. The pruning engine only ever reads messages; it signals
// removals by call id and hands back redacted copies.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Parts     []Part    `json:"parts"`
	CreatedAt time.Time `json:"created_at"`
}

// ToolParts returns the message's tool parts in order.
func (m *Message) ToolParts() []Part {
	var parts []Part
	for _, p := range m.Parts {
		if p.Kind == PartKindTool {
			parts = append(parts, p)
		}
	}
	return parts
}

// PartKind represents the kind of a message part
type PartKind string

const (
	// PartKindText represents plain text content
	PartKindText PartKind = "text"

	// PartKindTool represents a tool invocation with its result
	PartKindTool PartKind = "tool"
)

// Tool call status values as reported by the host.
const (
	// StatusCompleted marks a tool call that finished successfully
	StatusCompleted = "completed"

	// StatusError marks a tool call that failed
	StatusError = "error"
)

// Part is a single piece of content in a message. Tool parts carry the call
// id that correlates them with a ToolCallRecord in session state.
type Part struct {
	Kind PartKind `json:"kind"`

	// Text content
	Text string `json:"text,omitempty"`

	// Tool call content
	CallID string         `json:"call_id,omitempty"`
	Tool   string         `json:"tool,omitempty"`
	Input  map[string]any `json:"input,omitempty"`
	Output string         `json:"output,omitempty"`
	Status string         `json:"status,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// IsToolCall reports whether the part carries a tool invocation.
func (p *Part) IsToolCall() bool {
	return p.Kind == PartKindTool && p.CallID != ""
}

// Failed reports whether the part's tool call ended in an error.
func (p *Part) Failed() bool {
	return p.Status == StatusError || p.Error != ""
}

// SerializedContent returns the canonical serialized payload of a tool part,
// the unit that token estimation is charged against.
func (p *Part) SerializedContent() string {
	payload := struct {
		Tool   string         `json:"tool"`
		Input  map[string]any `json:"input,omitempty"`
		Output string         `json:"output,omitempty"`
		Error  string         `json:"error,omitempty"`
	}{Tool: p.Tool, Input: p.Input, Output: p.Output, Error: p.Error}

	data, err := json.Marshal(payload)
	if err != nil {
		return p.Output
	}
	return string(data)
}
