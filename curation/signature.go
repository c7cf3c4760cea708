package curation

import (
	"encoding/json"
	"fmt"
)

// NormalizeParameters returns a copy of params with nil-valued keys dropped
// at every depth. Array element order is preserved; object key order is
// irrelevant after normalization because serialization emits keys
// lexicographically.
func NormalizeParameters(params map[string]any) map[string]any {
	normalized := normalizeValue(params)
	if m, ok := normalized.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			if elem == nil {
				continue
			}
			out[k] = normalizeValue(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = normalizeValue(elem)
		}
		return out
	default:
		return v
	}
}

// Signature builds the order-independent duplicate-detection key for a call:
// the tool name joined with the canonical serialization of its normalized
// parameters. Two calls with the same tool and the same parameters in any
// key order produce the same signature.
func Signature(tool string, params map[string]any) string {
	data, err := json.Marshal(NormalizeParameters(params))
	if err != nil {
		// fmt prints map keys sorted, so this stays deterministic even
		// for parameters JSON cannot serialize.
		return fmt.Sprintf("%s::%v", tool, params)
	}
	return tool + "::" + string(data)
}
