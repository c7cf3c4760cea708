package tool

import (
	"encoding/json"
	"fmt"
)

// Validator validates tool inputs against their schemas before dispatch.
type Validator struct{}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateInput validates input against a tool's schema.
func (v *Validator) ValidateInput(schema Schema, input json.RawMessage) error {
	if schema.Type != "object" {
		return fmt.Errorf("%w: schema type must be 'object', got %q", ErrInvalidInput, schema.Type)
	}

	var inputMap map[string]any
	if err := json.Unmarshal(input, &inputMap); err != nil {
		return fmt.Errorf("%w: not valid JSON: %v", ErrInvalidInput, err)
	}

	for _, required := range schema.Required {
		if _, exists := inputMap[required]; !exists {
			return fmt.Errorf("%w: missing required field %q", ErrInvalidInput, required)
		}
	}

	for name, def := range schema.Properties {
		value, exists := inputMap[name]
		if !exists {
			continue
		}
		if err := v.validateProperty(name, def, value); err != nil {
			return err
		}
	}

	return nil
}

func (v *Validator) validateProperty(name string, def Property, value any) error {
	if value == nil {
		return nil
	}

	switch def.Type {
	case "string":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: field %q: expected string, got %T", ErrInvalidInput, name, value)
		}
		if def.MinLength != nil && len(s) < *def.MinLength {
			return fmt.Errorf("%w: field %q: length %d is below minimum %d", ErrInvalidInput, name, len(s), *def.MinLength)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%w: field %q: expected boolean, got %T", ErrInvalidInput, name, value)
		}
	case "integer":
		switch n := value.(type) {
		case float64:
			if n != float64(int64(n)) {
				return fmt.Errorf("%w: field %q: expected integer, got float %v", ErrInvalidInput, name, n)
			}
		case int, int64, int32, json.Number:
		default:
			return fmt.Errorf("%w: field %q: expected integer, got %T", ErrInvalidInput, name, value)
		}
	case "array":
		arr, ok := value.([]any)
		if !ok {
			return fmt.Errorf("%w: field %q: expected array, got %T", ErrInvalidInput, name, value)
		}
		if def.MinItems != nil && len(arr) < *def.MinItems {
			return fmt.Errorf("%w: field %q: %d items is below minimum %d", ErrInvalidInput, name, len(arr), *def.MinItems)
		}
		if def.Items != nil {
			for i, item := range arr {
				if err := v.validateProperty(fmt.Sprintf("%s[%d]", name, i), *def.Items, item); err != nil {
					return err
				}
			}
		}
	case "object":
		obj, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: field %q: expected object, got %T", ErrInvalidInput, name, value)
		}
		for propName, propDef := range def.Properties {
			if propVal, exists := obj[propName]; exists {
				if err := v.validateProperty(name+"."+propName, propDef, propVal); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
