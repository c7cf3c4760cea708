package ctxprune

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ctxprune/ctxprune/curation"
	"github.com/ctxprune/ctxprune/hooks"
	"github.com/ctxprune/ctxprune/tool"
	"github.com/ctxprune/ctxprune/types"
)

// collectorTimeout bounds each fire-and-forget analytics call.
const collectorTimeout = 5 * time.Second

// MessageSource is the host-side supplier of a session's materialized
// message history. A failing source degrades the turn to a no-op; it never
// fails it.
type MessageSource interface {
	Messages(ctx context.Context, sessionID string) ([]*types.Message, error)
}

// Options carries the injectable collaborators of an Engine. Every field is
// optional.
type Options struct {
	// Estimator overrides the default character-approximation token
	// estimator. Use curation.NewTokenCounter for API-backed counting.
	Estimator curation.Estimator

	// Collector receives fire-and-forget prune analytics. Defaults to
	// curation.NopCollector.
	Collector curation.Collector

	// Hooks is the observer registry. Defaults to an empty registry.
	Hooks *hooks.Registry

	// Logger defaults to log.Default().
	Logger *log.Logger

	// Source lets RunTurn fetch message histories itself. TransformMessages
	// works without it.
	Source MessageSource

	// Variant tags sessions with the host's agent mode, for reporting only.
	Variant string
}

// Engine is the context-curation pruning engine. One Engine serves many
// sessions; per-session state lives in the session manager and the host
// serializes all calls touching a single session.
type Engine struct {
	config     *curation.Config
	sessions   *curation.Manager
	strategies []curation.Strategy
	protected  *curation.PatternSet
	estimate   curation.Estimator
	collector  curation.Collector
	hooks      *hooks.Registry
	tools      *tool.Registry
	logger     *log.Logger
	source     MessageSource
}

// New creates an Engine from configuration. A nil config means
// curation.DefaultConfig.
func New(cfg *curation.Config, opts *Options) (*Engine, error) {
	if cfg == nil {
		cfg = curation.DefaultConfig()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &Options{}
	}

	protected, err := curation.CompilePatterns(cfg.ProtectedFilePatterns)
	if err != nil {
		return nil, curation.WrapError("New", err)
	}

	estimate := opts.Estimator
	if estimate == nil {
		estimate = curation.ApproximateTokens
	}
	collector := opts.Collector
	if collector == nil {
		collector = curation.NopCollector{}
	}
	registry := opts.Hooks
	if registry == nil {
		registry = hooks.NewRegistry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Debug {
		hooks.NewLoggingHooks(logger).Register(registry)
	}

	e := &Engine{
		config:     cfg,
		sessions:   curation.NewManager(opts.Variant),
		strategies: curation.NewStrategies(cfg, protected, estimate),
		protected:  protected,
		estimate:   estimate,
		collector:  collector,
		hooks:      registry,
		tools:      tool.NewRegistry(),
		logger:     logger,
		source:     opts.Source,
	}

	if cfg.Enabled {
		if cfg.Tools.Discard.Enabled {
			if err := e.tools.Register(tool.NewDiscardTool(e.sessions)); err != nil {
				return nil, err
			}
		}
		if cfg.Tools.Extract.Enabled {
			if err := e.tools.Register(tool.NewExtractTool(e.sessions)); err != nil {
				return nil, err
			}
		}
	}

	return e, nil
}

// Sessions exposes the session manager so hosts can end sessions or record
// external compaction events.
func (e *Engine) Sessions() *curation.Manager {
	return e.sessions
}

// Tools returns the enabled manual tools for registration with the host.
func (e *Engine) Tools() []tool.Tool {
	return e.tools.All()
}

// ToolRegistry returns the underlying tool registry, including the
// Anthropic-format conversions.
func (e *Engine) ToolRegistry() *tool.Registry {
	return e.tools
}

// ExecuteTool runs a manual tool on behalf of a session. Input is validated
// against the tool's schema before dispatch.
func (e *Engine) ExecuteTool(ctx context.Context, sessionID, name string, input []byte) (string, error) {
	ctx = tool.WithSessionID(ctx, sessionID)
	result, err := e.tools.Execute(ctx, name, input)
	if err != nil {
		return "", err
	}
	if name == tool.ExtractToolName {
		e.notifyExtract(ctx, sessionID, input, result)
	}
	return result, nil
}

// notifyExtract fires extract hooks after an extract execution. The tool
// reports failures inside its JSON result rather than as a Go error, so the
// result's success flag gates the hook: a rejected extract stored nothing and
// observers must not see an event for it.
func (e *Engine) notifyExtract(ctx context.Context, sessionID string, input []byte, result string) {
	var outcome struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal([]byte(result), &outcome); err != nil || !outcome.Success {
		return
	}

	state, ok := e.sessions.Peek(sessionID)
	if !ok {
		return
	}
	id, summary := parseExtractInput(input)
	if id == "" {
		return
	}
	if stored, ok := state.Summary(id); ok && stored != "" {
		summary = stored
	}
	if err := e.hooks.TriggerExtract(ctx, &hooks.ExtractEvent{
		SessionID: sessionID,
		ToolID:    id,
		Summary:   summary,
	}); err != nil {
		e.logger.Printf("[ctxprune] extract hook failed: %v", err)
	}
}

// track reports one prune batch to the analytics collector. Reporting is
// fire-and-forget: it runs off the turn's critical path on a background
// context, and a failing or panicking collector is swallowed.
func (e *Engine) track(sessionID string, toolIDs []string, tokensSaved int, strategy string) {
	go func() {
		defer func() {
			if r := recover(); r != nil && e.config.Debug {
				e.logger.Printf("[ctxprune] collector panicked: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), collectorTimeout)
		defer cancel()

		if err := e.collector.TrackPrune(ctx, sessionID, toolIDs, tokensSaved, strategy); err != nil && e.config.Debug {
			e.logger.Printf("[ctxprune] collector track failed: %v", err)
		}
	}()
}
