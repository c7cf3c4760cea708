// Package databasesql provides a database/sql analytics collector backed by
// Postgres via lib/pq. Use it when the host standardizes on database/sql;
// otherwise prefer the pgxv5 collector.
package databasesql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ctxprune/ctxprune/curation"
)

// Schema is the DDL for the events table, identical to the pgxv5 backend so
// the two collectors are interchangeable against the same database.
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

// Collector implements curation.Collector on a database/sql handle.
type Collector struct {
	db *sql.DB
}

// New creates a collector with the given database handle.
func New(db *sql.DB) *Collector {
	return &Collector{db: db}
}

// DB returns the underlying *sql.DB for advanced usage.
func (c *Collector) DB() *sql.DB {
	return c.db
}

// Migrate creates the events table if it does not exist.
func (c *Collector) Migrate(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, Schema); err != nil {
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
	_, err := c.db.ExecContext(ctx, query,
		uuid.New().String(), sessionID, strategy, pq.Array(toolIDs), tokensSaved, time.Now())
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
	err := c.db.QueryRowContext(ctx, query, sessionID, curation.StrategyExtract).
		Scan(&stats.PruneEvents, &stats.ExtractEvents, &stats.TotalTokensSaved)
	if err != nil {
		return nil, fmt.Errorf("failed to query prune stats: %w", err)
	}
	return stats, nil
}
