package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"
)

// Registry manages the curation tools and converts them to Anthropic format
// for hosts that hand tool definitions straight to the API.
type Registry struct {
	tools     map[string]Tool
	order     []string
	validator *Validator
	mu        sync.RWMutex
}

// NewRegistry creates a new tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools:     make(map[string]Tool),
		validator: NewValidator(),
	}
}

// Register adds a tool to the registry.
func (r *Registry) Register(t Tool) error {
	if t == nil {
		return fmt.Errorf("tool cannot be nil")
	}

	name := t.Name()
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if schema := t.InputSchema(); schema.Type != "object" {
		return fmt.Errorf("tool %s: schema type must be 'object', got %q", name, schema.Type)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %s already registered", name)
	}
	r.tools[name] = t
	r.order = append(r.order, name)
	return nil
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, exists := r.tools[name]
	return t, exists
}

// Has checks if a tool is registered.
func (r *Registry) Has(name string) bool {
	_, exists := r.Get(name)
	return exists
}

// List returns registered tool names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// All returns the registered tools in registration order.
func (r *Registry) All() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// Execute validates input against the tool's schema and runs the tool.
func (r *Registry) Execute(ctx context.Context, toolName string, input json.RawMessage) (string, error) {
	t, exists := r.Get(toolName)
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, toolName)
	}
	if err := r.validator.ValidateInput(t.InputSchema(), input); err != nil {
		return "", err
	}
	return t.Execute(ctx, input)
}

// ToAnthropicTools converts all registered tools to Anthropic tool params.
func (r *Registry) ToAnthropicTools() []anthropic.ToolParam {
	tools := r.All()
	params := make([]anthropic.ToolParam, 0, len(tools))
	for _, t := range tools {
		params = append(params, toAnthropicParam(t))
	}
	return params
}

// ToAnthropicToolUnions converts registered tools to union parameters.
func (r *Registry) ToAnthropicToolUnions() []anthropic.ToolUnionParam {
	params := r.ToAnthropicTools()
	unions := make([]anthropic.ToolUnionParam, len(params))
	for i := range params {
		unions[i] = anthropic.ToolUnionParam{OfTool: &params[i]}
	}
	return unions
}

func toAnthropicParam(t Tool) anthropic.ToolParam {
	schema := t.InputSchema()

	properties := make(map[string]interface{}, len(schema.Properties))
	for name, def := range schema.Properties {
		properties[name] = propertyToMap(def)
	}

	inputSchema := anthropic.ToolInputSchemaParam{
		Type:       constant.Object("object"),
		Properties: properties,
	}
	if len(schema.Required) > 0 {
		inputSchema.Required = schema.Required
	}

	return anthropic.ToolParam{
		Name:        t.Name(),
		Description: anthropic.String(t.Description()),
		InputSchema: inputSchema,
	}
}

func propertyToMap(def Property) map[string]interface{} {
	prop := map[string]interface{}{
		"type": def.Type,
	}
	if def.Description != "" {
		prop["description"] = def.Description
	}
	if def.MinLength != nil {
		prop["minLength"] = *def.MinLength
	}
	if def.MinItems != nil {
		prop["minItems"] = *def.MinItems
	}
	if def.Items != nil {
		prop["items"] = propertyToMap(*def.Items)
	}
	if len(def.Properties) > 0 {
		nested := make(map[string]interface{}, len(def.Properties))
		for name, nestedDef := range def.Properties {
			nested[name] = propertyToMap(nestedDef)
		}
		prop["properties"] = nested
	}
	return prop
}
