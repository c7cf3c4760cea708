package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ctxprune/ctxprune/curation"
)

// DiscardToolName is the name the discard tool is registered under.
const DiscardToolName = "discard"

// DiscardResult is the structured result of a discard invocation. A request
// that mixes valid and unknown ids still succeeds for the valid subset; the
// unknown ids are reported in Invalid.
type DiscardResult struct {
	Success   bool     `json:"success"`
	Discarded int      `json:"discarded"`
	Invalid   []string `json:"invalid,omitempty"`
	Message   string   `json:"message"`
}

// DiscardTool lets the agent explicitly drop tool outputs it no longer
// needs. Token accounting for discarded calls is deferred: the tool's own
// invocation context has no message list, so the ids are queued and costed
// during the next orchestration pass.
type DiscardTool struct {
	sessions *curation.Manager
}

// NewDiscardTool creates the discard tool against a session manager.
func NewDiscardTool(sessions *curation.Manager) *DiscardTool {
	return &DiscardTool{sessions: sessions}
}

// Name implements Tool.
func (t *DiscardTool) Name() string {
	return DiscardToolName
}

// Description implements Tool.
func (t *DiscardTool) Description() string {
	return "Remove tool outputs you no longer need from the conversation context. " +
		"Pass the tool call ids to discard. Use this when an output has served its " +
		"purpose and is only taking up context space."
}

// InputSchema implements Tool.
func (t *DiscardTool) InputSchema() Schema {
	return Schema{
		Type: "object",
		Properties: map[string]Property{
			"tool_ids": {
				Type:        "array",
				Description: "Tool call ids whose outputs should be discarded",
				Items:       &Property{Type: "string"},
				MinItems:    intPtr(1),
			},
		},
		Required: []string{"tool_ids"},
	}
}

// Execute implements Tool. The result is always a JSON DiscardResult;
// invalid input is reported inside the result, never as a Go error.
func (t *DiscardTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var params struct {
		ToolIDs []string `json:"tool_ids"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return marshalResult(DiscardResult{
			Message: fmt.Sprintf("invalid input: %v", err),
		})
	}
	if len(params.ToolIDs) == 0 {
		return marshalResult(DiscardResult{
			Message: curation.ErrNoToolIDs.Error(),
		})
	}

	sessionID, ok := SessionIDFrom(ctx)
	if !ok {
		return marshalResult(DiscardResult{
			Message: ErrMissingSession.Error(),
		})
	}
	state := t.sessions.Session(sessionID)

	var valid, invalid []string
	for _, id := range params.ToolIDs {
		if state.Has(id) {
			valid = append(valid, id)
		} else {
			invalid = append(invalid, id)
		}
	}

	if len(valid) == 0 {
		return marshalResult(DiscardResult{
			Invalid: invalid,
			Message: fmt.Sprintf("%s: %d unknown id(s)", curation.ErrNoMatchingCalls.Error(), len(invalid)),
		})
	}

	newly := state.MarkPruned(curation.StrategyDiscard, valid...)
	state.EnqueuePendingTokens(newly...)

	msg := fmt.Sprintf("discarded %d tool output(s)", len(newly))
	if len(invalid) > 0 {
		msg += fmt.Sprintf(", %d id(s) not found", len(invalid))
	}
	return marshalResult(DiscardResult{
		Success:   true,
		Discarded: len(newly),
		Invalid:   invalid,
		Message:   msg,
	})
}

func marshalResult(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
