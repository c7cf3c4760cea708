package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ctxprune/ctxprune/curation"
)

// ExtractToolName is the name the extract tool is registered under.
const ExtractToolName = "extract"

// ExtractResult is the structured result of an extract invocation.
type ExtractResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ExtractTool lets the agent replace a tool output with a short summary of
// its own. The summary is lossy by design: the original payload is not kept.
// Extracting the same call again simply replaces the stored summary without
// double-counting the prune.
type ExtractTool struct {
	sessions *curation.Manager
}

// NewExtractTool creates the extract tool against a session manager.
func NewExtractTool(sessions *curation.Manager) *ExtractTool {
	return &ExtractTool{sessions: sessions}
}

// Name implements Tool.
func (t *ExtractTool) Name() string {
	return ExtractToolName
}

// Description implements Tool.
func (t *ExtractTool) Description() string {
	return "Replace a tool output with a concise summary you write. The original " +
		"output is removed from context and your summary is shown in its place. " +
		"Use this when a long output contains a small number of facts worth keeping."
}

// InputSchema implements Tool.
func (t *ExtractTool) InputSchema() Schema {
	return Schema{
		Type: "object",
		Properties: map[string]Property{
			"tool_id": {
				Type:        "string",
				Description: "Id of the tool call whose output to summarize away",
				MinLength:   intPtr(1),
			},
			"summary": {
				Type:        "string",
				Description: "The summary that will replace the output",
				MinLength:   intPtr(1),
			},
		},
		Required: []string{"tool_id", "summary"},
	}
}

// Execute implements Tool.
func (t *ExtractTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params struct {
		ToolID  string `json:"tool_id"`
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return marshalResult(ExtractResult{
			Message: fmt.Sprintf("invalid input: %v", err),
		})
	}
	if params.ToolID == "" {
		return marshalResult(ExtractResult{Message: curation.ErrEmptyToolID.Error()})
	}
	if strings.TrimSpace(params.Summary) == "" {
		return marshalResult(ExtractResult{Message: curation.ErrEmptySummary.Error()})
	}

	sessionID, ok := SessionIDFrom(ctx)
	if !ok {
		return marshalResult(ExtractResult{Message: ErrMissingSession.Error()})
	}
	state := t.sessions.Session(sessionID)

	if !state.Has(params.ToolID) {
		return marshalResult(ExtractResult{
			Message: fmt.Sprintf("%s: %s", curation.ErrUnknownCall.Error(), params.ToolID),
		})
	}

	state.SetSummary(params.ToolID, params.Summary)
	state.MarkPruned(curation.StrategyExtract, params.ToolID)

	return marshalResult(ExtractResult{
		Success: true,
		Message: fmt.Sprintf("stored summary for %s and pruned its output", params.ToolID),
	})
}
