// Package curation implements the context-curation pruning core: per-session
// state, the automatic pruning strategies, token accounting, and the
// analytics collector contract.
//
// The engine tracks every tool call a session has ever made in a
// SessionState and maintains a monotonic prune set of call ids whose outputs
// can be dropped from the rendered context. Three automatic strategies feed
// the prune set each turn:
//
//   - deduplication collapses repeated identical calls to the most recent one;
//   - supersede-writes drops a write once a later read of the same resource
//     exists;
//   - purge-errors ages out failed calls after a configurable turn threshold.
//
// Pruning never rewrites the host's message history. Strategies only mark
// call ids; the hosting layer replaces marked parts with a redaction marker
// when rendering the next prompt. Calls whose resource path matches a
// protected glob pattern are immune to every automatic strategy.
//
// Token savings are charged through a single pluggable Estimator so stats
// stay comparable across strategies. The default estimator is a fast
// character approximation; TokenCounter upgrades it to the Anthropic token
// counting API with caching and the approximation as fallback.
package curation
