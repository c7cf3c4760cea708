package curation

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ctxprune/ctxprune/types"
)

// Estimator maps a serialized tool payload to an estimated token count. The
// engine applies one estimator consistently across every strategy so that
// accumulated stats stay comparable. Estimators must be deterministic for a
// given payload.
type Estimator func(content string) int

// ApproximateTokens provides fast estimation without an API call, roughly
// four characters per token. Any non-empty payload costs at least one token.
func ApproximateTokens(content string) int {
	if len(content) == 0 {
		return 0
	}
	return (len(content) + 3) / 4
}

// EstimateTokens sums the estimator over the serialized content of every
// tool part whose call id is in ids. Ids without a visible part (already
// compacted away) contribute nothing.
func EstimateTokens(state *SessionState, messages []*types.Message, ids []string, estimate Estimator) int {
	if len(ids) == 0 || estimate == nil {
		return 0
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	total := 0
	for _, msg := range messages {
		if skipCompacted(state, msg) {
			continue
		}
		for i := range msg.Parts {
			part := &msg.Parts[i]
			if !part.IsToolCall() {
				continue
			}
			if _, ok := wanted[part.CallID]; !ok {
				continue
			}
			total += estimate(part.SerializedContent())
		}
	}
	return total
}

// TokenCounter estimates tokens through the Anthropic token counting API,
// caching per payload and falling back to ApproximateTokens when the API is
// unreachable. The cache keeps the estimator deterministic across a session.
type TokenCounter struct {
	client *anthropic.Client
	model  string
	cache  map[string]int
}

// NewTokenCounter creates a token counter for the given model.
func NewTokenCounter(client *anthropic.Client, model string) *TokenCounter {
	return &TokenCounter{
		client: client,
		model:  model,
		cache:  make(map[string]int),
	}
}

// Count returns the token count for a payload, consulting the cache first.
func (c *TokenCounter) Count(ctx context.Context, content string) int {
	if content == "" {
		return 0
	}
	key := c.cacheKey(content)
	if count, ok := c.cache[key]; ok {
		return count
	}

	resp, err := c.client.Messages.CountTokens(ctx, anthropic.MessageCountTokensParams{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(content),
				},
			},
		},
	})
	if err != nil {
		// Approximation keeps pruning off the network's critical path.
		count := ApproximateTokens(content)
		c.cache[key] = count
		return count
	}

	count := int(resp.InputTokens)
	c.cache[key] = count
	return count
}

// Estimator adapts the counter to the Estimator shape, binding the context
// used for API calls.
func (c *TokenCounter) Estimator(ctx context.Context) Estimator {
	return func(content string) int {
		return c.Count(ctx, content)
	}
}

func (c *TokenCounter) cacheKey(content string) string {
	hash := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%s:%x", c.model, hash[:8])
}
