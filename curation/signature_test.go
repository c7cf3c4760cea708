package curation

import (
	"testing"
)

func TestSignature(t *testing.T) {
	tests := []struct {
		name      string
		toolA     string
		paramsA   map[string]any
		toolB     string
		paramsB   map[string]any
		wantEqual bool
	}{
		{
			name:      "identical calls",
			toolA:     "read",
			paramsA:   map[string]any{"path": "main.go"},
			toolB:     "read",
			paramsB:   map[string]any{"path": "main.go"},
			wantEqual: true,
		},
		{
			name:      "key order is irrelevant",
			toolA:     "grep",
			paramsA:   map[string]any{"pattern": "foo", "path": "src"},
			toolB:     "grep",
			paramsB:   map[string]any{"path": "src", "pattern": "foo"},
			wantEqual: true,
		},
		{
			name:      "nil valued keys are dropped",
			toolA:     "read",
			paramsA:   map[string]any{"path": "main.go", "limit": nil},
			toolB:     "read",
			paramsB:   map[string]any{"path": "main.go"},
			wantEqual: true,
		},
		{
			name:      "nested nil keys are dropped",
			toolA:     "search",
			paramsA:   map[string]any{"opts": map[string]any{"case": true, "max": nil}},
			toolB:     "search",
			paramsB:   map[string]any{"opts": map[string]any{"case": true}},
			wantEqual: true,
		},
		{
			name:      "different tools differ",
			toolA:     "read",
			paramsA:   map[string]any{"path": "main.go"},
			toolB:     "grep",
			paramsB:   map[string]any{"path": "main.go"},
			wantEqual: false,
		},
		{
			name:      "different values differ",
			toolA:     "read",
			paramsA:   map[string]any{"path": "main.go"},
			toolB:     "read",
			paramsB:   map[string]any{"path": "other.go"},
			wantEqual: false,
		},
		{
			name:      "array order matters",
			toolA:     "batch",
			paramsA:   map[string]any{"files": []any{"a.go", "b.go"}},
			toolB:     "batch",
			paramsB:   map[string]any{"files": []any{"b.go", "a.go"}},
			wantEqual: false,
		},
		{
			name:      "empty vs nil params",
			toolA:     "list",
			paramsA:   map[string]any{},
			toolB:     "list",
			paramsB:   nil,
			wantEqual: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sigA := Signature(tt.toolA, tt.paramsA)
			sigB := Signature(tt.toolB, tt.paramsB)
			if (sigA == sigB) != tt.wantEqual {
				t.Errorf("Signature equality = %v, want %v (%q vs %q)",
					sigA == sigB, tt.wantEqual, sigA, sigB)
			}
		})
	}
}

func TestNormalizeParameters(t *testing.T) {
	params := map[string]any{
		"keep":   "value",
		"drop":   nil,
		"nested": map[string]any{"inner": nil, "stay": 1},
		"list":   []any{map[string]any{"gone": nil}},
	}

	got := NormalizeParameters(params)

	if _, ok := got["drop"]; ok {
		t.Error("nil-valued key survived normalization")
	}
	nested, ok := got["nested"].(map[string]any)
	if !ok {
		t.Fatal("nested map lost during normalization")
	}
	if _, ok := nested["inner"]; ok {
		t.Error("nested nil-valued key survived normalization")
	}
	if nested["stay"] != 1 {
		t.Errorf("nested value changed: got %v", nested["stay"])
	}
	list, ok := got["list"].([]any)
	if !ok || len(list) != 1 {
		t.Fatal("array lost during normalization")
	}
	elem, ok := list[0].(map[string]any)
	if !ok {
		t.Fatal("array element lost during normalization")
	}
	if _, ok := elem["gone"]; ok {
		t.Error("nil-valued key inside array element survived normalization")
	}
}

func TestNormalizeParametersDoesNotMutateInput(t *testing.T) {
	params := map[string]any{"keep": "value", "drop": nil}
	NormalizeParameters(params)
	if _, ok := params["drop"]; !ok {
		t.Error("normalization mutated the input map")
	}
}
