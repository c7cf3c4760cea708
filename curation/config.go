package curation

import (
	"fmt"
)

// Strategy names used for stats attribution and analytics reporting.
const (
	// StrategyDeduplication prunes repeated identical tool calls.
	StrategyDeduplication = "deduplication"

	// StrategySupersedeWrites prunes writes made obsolete by a later read.
	StrategySupersedeWrites = "supersedeWrites"

	// StrategyPurgeErrors prunes failed tool calls after a turn threshold.
	StrategyPurgeErrors = "purgeErrors"

	// StrategyDiscard attributes prunes requested via the discard tool.
	StrategyDiscard = "discard"

	// StrategyExtract attributes prunes requested via the extract tool.
	StrategyExtract = "extract"
)

// Default configuration values.
const (
	// DefaultTurnThreshold is how many turns a failed call survives before
	// the purge-errors strategy removes it.
	DefaultTurnThreshold = 3
)

// Default tool classifications for the supersede-writes strategy.
var (
	DefaultWriteTools = []string{"write", "edit", "patch"}
	DefaultReadTools  = []string{"read", "grep", "glob", "list"}
)

// DefaultProtectedFilePatterns exempts credential-ish paths from every
// automatic strategy.
var DefaultProtectedFilePatterns = []string{
	"**/.env*",
	"**/*.pem",
	"**/id_rsa*",
	"**/secrets/**",
}

// Config holds pruning engine configuration.
//
// The zero value is a fully disabled engine; use DefaultConfig for the
// recommended setup with every strategy and tool enabled.
type Config struct {
	// Enabled is the master switch. When false the engine passes messages
	// through untouched and exposes no tools.
	Enabled bool

	// Debug enables verbose logging of every strategy decision.
	Debug bool

	// Strategies configures the automatic strategies.
	Strategies StrategiesConfig

	// Tools configures the agent-invoked manual tools.
	Tools ToolsConfig

	// ProtectedFilePatterns is a list of glob patterns ("**" crosses path
	// separators, "*" does not). Calls whose resource path matches any
	// pattern are immune to all automatic strategies.
	ProtectedFilePatterns []string
}

// StrategiesConfig configures the automatic pruning strategies.
type StrategiesConfig struct {
	Deduplication   DeduplicationConfig
	SupersedeWrites SupersedeWritesConfig
	PurgeErrors     PurgeErrorsConfig
}

// DeduplicationConfig configures the duplicate-call strategy.
type DeduplicationConfig struct {
	Enabled bool

	// ProtectedTools lists tool names deduplication never touches.
	ProtectedTools []string
}

// SupersedeWritesConfig configures the write-supersession strategy.
type SupersedeWritesConfig struct {
	Enabled bool

	// WriteTools and ReadTools classify calls by tool name. Defaults are
	// applied when empty.
	WriteTools []string
	ReadTools  []string
}

// PurgeErrorsConfig configures the failed-call aging strategy.
type PurgeErrorsConfig struct {
	Enabled bool

	// TurnThreshold is the number of elapsed turns (inclusive) after which
	// a failed call becomes prunable.
	TurnThreshold int
}

// ToolsConfig configures the manual tools exposed to the agent.
type ToolsConfig struct {
	Discard ToolConfig
	Extract ToolConfig
}

// ToolConfig is the per-tool switch.
type ToolConfig struct {
	Enabled bool
}

// DefaultConfig returns a Config with every strategy and tool enabled.
func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Strategies: StrategiesConfig{
			Deduplication: DeduplicationConfig{Enabled: true},
			SupersedeWrites: SupersedeWritesConfig{
				Enabled:    true,
				WriteTools: DefaultWriteTools,
				ReadTools:  DefaultReadTools,
			},
			PurgeErrors: PurgeErrorsConfig{
				Enabled:       true,
				TurnThreshold: DefaultTurnThreshold,
			},
		},
		Tools: ToolsConfig{
			Discard: ToolConfig{Enabled: true},
			Extract: ToolConfig{Enabled: true},
		},
		ProtectedFilePatterns: DefaultProtectedFilePatterns,
	}
}

// ApplyDefaults fills in zero values with defaults. Boolean switches are left
// alone: a false switch means disabled, not unset.
func (c *Config) ApplyDefaults() {
	if len(c.Strategies.SupersedeWrites.WriteTools) == 0 {
		c.Strategies.SupersedeWrites.WriteTools = DefaultWriteTools
	}
	if len(c.Strategies.SupersedeWrites.ReadTools) == 0 {
		c.Strategies.SupersedeWrites.ReadTools = DefaultReadTools
	}
	if c.Strategies.PurgeErrors.TurnThreshold == 0 {
		c.Strategies.PurgeErrors.TurnThreshold = DefaultTurnThreshold
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Strategies.PurgeErrors.Enabled && c.Strategies.PurgeErrors.TurnThreshold < 1 {
		return fmt.Errorf("%w: purgeErrors turn threshold must be at least 1, got %d",
			ErrInvalidConfig, c.Strategies.PurgeErrors.TurnThreshold)
	}
	if _, err := CompilePatterns(c.ProtectedFilePatterns); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
