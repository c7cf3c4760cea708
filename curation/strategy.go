package curation

import (
	"github.com/ctxprune/ctxprune/types"
)

// Strategy is an automatic pruning pass. Each strategy scans the message
// history against the session state and appends the calls it deems removable
// to the shared prune set. Strategies never block on I/O: they compute over
// the in-memory state and the message snapshot they are handed.
type Strategy interface {
	// Name returns the strategy name used for stats attribution.
	Name() string

	// Apply scans messages and prunes eligible calls. It returns the ids
	// newly pruned by this pass and their estimated token cost.
	Apply(state *SessionState, messages []*types.Message) *StrategyResult
}

// StrategyResult reports one strategy pass.
type StrategyResult struct {
	// PrunedIDs are the ids this pass newly added to the prune set.
	PrunedIDs []string

	// TokensSaved is the estimated token cost of the newly pruned calls.
	TokensSaved int
}

// recordPrunes marks ids as pruned for a strategy, charges their token cost
// against the session stats, and builds the pass result. The token saving is
// computed over exactly the newly pruned ids so that re-running a strategy
// never double-counts.
func recordPrunes(state *SessionState, messages []*types.Message, name string, ids []string, estimate Estimator) *StrategyResult {
	newly := state.MarkPruned(name, ids...)
	tokens := EstimateTokens(state, messages, newly, estimate)
	state.AddPruneTokens(tokens)
	return &StrategyResult{
		PrunedIDs:   newly,
		TokensSaved: tokens,
	}
}

// NewStrategies builds the enabled automatic strategies in their fixed
// execution order: deduplication, then supersede-writes, then purge-errors.
// Order matters only for stats attribution; final prune-set membership is
// order-independent.
func NewStrategies(cfg *Config, protected *PatternSet, estimate Estimator) []Strategy {
	var strategies []Strategy
	if cfg.Strategies.Deduplication.Enabled {
		strategies = append(strategies,
			NewDedupStrategy(cfg.Strategies.Deduplication.ProtectedTools, protected, estimate))
	}
	if cfg.Strategies.SupersedeWrites.Enabled {
		strategies = append(strategies,
			NewSupersedeWritesStrategy(cfg.Strategies.SupersedeWrites.WriteTools,
				cfg.Strategies.SupersedeWrites.ReadTools, protected, estimate))
	}
	if cfg.Strategies.PurgeErrors.Enabled {
		strategies = append(strategies,
			NewPurgeErrorsStrategy(cfg.Strategies.PurgeErrors.TurnThreshold, protected, estimate))
	}
	return strategies
}
