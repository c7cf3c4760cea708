package tool

import (
	"context"
	"encoding/json"
)

// Tool is the interface the manual curation tools implement. Tools are
// exposed to the agent by the host runtime; their results are JSON documents
// describing success or structured failure, never Go errors, so a bad input
// can never fail the host's tool pipeline.
type Tool interface {
	// Name returns the tool name used in API calls.
	Name() string

	// Description returns a human-readable description of the tool.
	Description() string

	// InputSchema returns the JSON Schema for the tool's input parameters.
	InputSchema() Schema

	// Execute runs the tool with the provided input and returns the result.
	Execute(ctx context.Context, input json.RawMessage) (string, error)
}

// Schema defines the JSON Schema for a tool's input parameters.
type Schema struct {
	// Type must be "object".
	Type string `json:"type"`

	// Properties defines the tool's parameters.
	Properties map[string]Property `json:"properties"`

	// Required lists the names of required parameters.
	Required []string `json:"required,omitempty"`
}

// Property defines a single parameter in a tool schema.
type Property struct {
	// Type is the JSON Schema type (string, integer, boolean, array, object).
	Type string `json:"type"`

	// Description explains what this parameter is for.
	Description string `json:"description,omitempty"`

	// Items defines the schema for array items (when Type is "array").
	Items *Property `json:"items,omitempty"`

	// Properties defines nested object properties (when Type is "object").
	Properties map[string]Property `json:"properties,omitempty"`

	// MinLength/MinItems constrain strings and arrays.
	MinLength *int `json:"minLength,omitempty"`
	MinItems  *int `json:"minItems,omitempty"`
}

// funcTool is a Tool implementation backed by a function.
type funcTool struct {
	name        string
	description string
	schema      Schema
	fn          func(context.Context, json.RawMessage) (string, error)
}

// Name implements Tool
func (t *funcTool) Name() string {
	return t.name
}

// Description implements Tool
func (t *funcTool) Description() string {
	return t.description
}

// InputSchema implements Tool
func (t *funcTool) InputSchema() Schema {
	return t.schema
}

// Execute implements Tool
func (t *funcTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	return t.fn(ctx, input)
}

// NewFuncTool creates a Tool from a function.
func NewFuncTool(
	name string,
	description string,
	schema Schema,
	fn func(context.Context, json.RawMessage) (string, error),
) Tool {
	return &funcTool{
		name:        name,
		description: description,
		schema:      schema,
		fn:          fn,
	}
}

func intPtr(n int) *int {
	return &n
}
