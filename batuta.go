// Package batuta is the high-level entry point for the orchestration
// engine. It wires the classifier, the built-in workflows, and a session
// store into one Engine, and provides a simplified API for consumers that
// embed the engine as a library.
package batuta

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/batuta-io/batuta/internal/adapters/document"
	"github.com/batuta-io/batuta/internal/adapters/git"
	"github.com/batuta-io/batuta/internal/adapters/jira"
	"github.com/batuta-io/batuta/internal/adapters/script"
	"github.com/batuta-io/batuta/internal/logging"
	"github.com/batuta-io/batuta/internal/runtime"
	"github.com/batuta-io/batuta/internal/workflows"
	"github.com/batuta-io/batuta/pkg/adapters/memory"
	"github.com/batuta-io/batuta/pkg/classifier"
	"github.com/batuta-io/batuta/pkg/domain"
	"github.com/batuta-io/batuta/pkg/pipeline"
	"github.com/batuta-io/batuta/pkg/ports"
	"github.com/batuta-io/batuta/pkg/session"
)

// Response is re-exported so library consumers do not need to import the
// internal runtime package.
type Response = runtime.Response

// Engine bundles the orchestrator with its collaborators.
type Engine struct {
	orchestrator *runtime.Orchestrator

	logger         *slog.Logger
	store          ports.StateStore
	locker         ports.DistributedLocker
	hooks          domain.LifecycleHooks
	stageTimeout   time.Duration
	loopIterations int

	gitAnalyzer ports.RepositoryAnalyzer
	tickets     ports.TicketSystem
	documents   ports.DocumentExtractor
	scripts     ports.ScriptGenerator
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger for the engine and its pipelines.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithStore injects a session store, replacing the default in-memory one.
func WithStore(store ports.StateStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker adds a distributed locker so multiple engine replicas sharing
// a store never execute the same session concurrently.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithLifecycleHooks registers observability hooks fired around pipelines
// and stages.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithStageTimeout bounds each stage run with a deadline.
func WithStageTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.stageTimeout = d
	}
}

// WithLoopIterations caps bounded loops, replacing the built-in default.
func WithLoopIterations(n int) Option {
	return func(e *Engine) {
		e.loopIterations = n
	}
}

// WithRepositoryAnalyzer overrides the git tool, e.g. for tests.
func WithRepositoryAnalyzer(a ports.RepositoryAnalyzer) Option {
	return func(e *Engine) {
		e.gitAnalyzer = a
	}
}

// WithTicketSystem overrides the ticket tracker client.
func WithTicketSystem(ts ports.TicketSystem) Option {
	return func(e *Engine) {
		e.tickets = ts
	}
}

// WithDocumentExtractor overrides the document tool.
func WithDocumentExtractor(d ports.DocumentExtractor) Option {
	return func(e *Engine) {
		e.documents = d
	}
}

// WithScriptGenerator overrides the script tool.
func WithScriptGenerator(g ports.ScriptGenerator) Option {
	return func(e *Engine) {
		e.scripts = g
	}
}

// New creates an Engine with all built-in workflows registered. Without
// options it runs fully in-process: in-memory sessions and the default
// tool adapters.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		logger:      logging.NewNop(),
		store:       memory.NewStore(),
		gitAnalyzer: git.New(),
		tickets:     jira.NewClient(),
		documents:   document.NewExtractor(),
		scripts:     script.NewGenerator(),
	}
	for _, opt := range opts {
		opt(e)
	}

	pipelineOpts := []pipeline.Option{
		pipeline.WithLogger(e.logger),
		pipeline.WithHooks(e.hooks),
	}
	if e.stageTimeout > 0 {
		pipelineOpts = append(pipelineOpts, pipeline.WithStageTimeout(e.stageTimeout))
	}

	reg := pipeline.NewRegistry()
	err := workflows.Register(reg, workflows.Deps{
		Git:            e.gitAnalyzer,
		Tickets:        e.tickets,
		Documents:      e.documents,
		Scripts:        e.scripts,
		LoopIterations: e.loopIterations,
	}, pipelineOpts...)
	if err != nil {
		return nil, fmt.Errorf("batuta: %w", err)
	}

	sessionOpts := []session.Option{}
	if e.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(e.locker))
	}
	sessions := session.NewManager(e.store, sessionOpts...)

	e.orchestrator, err = runtime.New(classifier.New(), reg, sessions,
		runtime.WithLogger(e.logger))
	if err != nil {
		return nil, fmt.Errorf("batuta: %w", err)
	}
	return e, nil
}

// HandleMessage processes one request end to end: classify, dispatch,
// execute, persist, reply.
func (e *Engine) HandleMessage(ctx context.Context, sessionID, userID, message string) (*Response, error) {
	return e.orchestrator.Handle(ctx, sessionID, userID, message)
}

// Classify reports the workflow a message would route to, without
// executing anything.
func (e *Engine) Classify(message string) string {
	return e.orchestrator.Classify(message)
}

// Workflows returns the registered workflow names.
func (e *Engine) Workflows() []string {
	return e.orchestrator.Workflows()
}

// Sessions exposes the session manager for surface adapters.
func (e *Engine) Sessions() *session.Manager {
	return e.orchestrator.Sessions()
}

// Handle implements the adapter Engine interfaces (HTTP, MCP) directly.
func (e *Engine) Handle(ctx context.Context, sessionID, userID, message string) (*Response, error) {
	return e.orchestrator.Handle(ctx, sessionID, userID, message)
}
