// Package pgxv5 provides a pgx/v5 analytics collector backed by Postgres.
//
// This is the recommended backend when the host already runs a pgxpool. Each
// prune batch becomes one row in ctxprune_events; Stats aggregates a
// session's history with a single query.
//
// Usage:
//
//	pool, _ := pgxpool.New(ctx, databaseURL)
//	c := pgxv5.New(pool)
//	_ = c.Migrate(ctx)
//	engine, _ := ctxprune.New(cfg, &ctxprune.Options{Collector: c})
package pgxv5

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ctxprune/ctxprune/curation"
)

// Schema is the DDL for the events table. Run it via Migrate or through the
// host's own migration tooling.
const Schema = `
CREATE TABLE IF NOT EXISTS ctxprune_events (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	strategy TEXT NOT NULL,
	tool_ids TEXT[] NOT NULL,
	tokens_saved INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_ctxprune_events_session
	ON ctxprune_events (session_id, created_at);
`

// Collector implements curation.Collector on a pgx/v5 pool.
type Collector struct {
	pool *pgxpool.Pool
}

// New creates a collector with the given connection pool.
func New(pool *pgxpool.Pool) *Collector {
	return &Collector{pool: pool}
}

// Pool returns the underlying pgxpool.Pool for advanced usage.
func (c *Collector) Pool() *pgxpool.Pool {
	return c.pool
}

// Migrate creates the events table if it does not exist.
func (c *Collector) Migrate(ctx context.Context) error {
	if _, err := c.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to migrate ctxprune_events: %w", err)
	}
	return nil
}

// TrackPrune implements curation.Collector.
func (c *Collector) TrackPrune(ctx context.Context, sessionID string, toolIDs []string, tokensSaved int, strategy string) error {
	if len(toolIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO ctxprune_events (id, session_id, strategy, tool_ids, tokens_saved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := c.pool.Exec(ctx, query,
		uuid.New().String(), sessionID, strategy, toolIDs, tokensSaved, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert prune event: %w", err)
	}
	return nil
}

// Stats implements curation.Collector.
func (c *Collector) Stats(ctx context.Context, sessionID string) (*curation.CollectorStats, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE strategy <> $2),
		       COUNT(*) FILTER (WHERE strategy = $2),
		       COALESCE(SUM(tokens_saved), 0)
		FROM ctxprune_events
		WHERE session_id = $1
	`

	stats := &curation.CollectorStats{}
	err := c.pool.QueryRow(ctx, query, sessionID, curation.StrategyExtract).
		Scan(&stats.PruneEvents, &stats.ExtractEvents, &stats.TotalTokensSaved)
	if err != nil {
		return nil, fmt.Errorf("failed to query prune stats: %w", err)
	}
	return stats, nil
}
