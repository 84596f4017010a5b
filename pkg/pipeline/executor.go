package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/batuta-io/batuta/internal/logging"
	"github.com/batuta-io/batuta/pkg/domain"
	"github.com/batuta-io/batuta/pkg/ports"
)

// options holds the shared configuration of both composition types.
type options struct {
	logger       *slog.Logger
	hooks        domain.LifecycleHooks
	stageTimeout time.Duration
}

// Option configures a pipeline composition.
type Option func(*options)

// WithLogger sets a structured logger for stage-level events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithHooks registers observability callbacks fired around each stage.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithStageTimeout bounds each stage run with a deadline, so a hung
// external call cannot starve the session indefinitely.
func WithStageTimeout(d time.Duration) Option {
	return func(o *options) {
		o.stageTimeout = d
	}
}

func newOptions(opts []Option) options {
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// runStage executes one stage, commits its deltas, and records timing.
// Deltas are applied to the state here, between atomic mutations, never
// mid-stage, so loop iterations observe fully committed effects.
func (o *options) runStage(ctx context.Context, workflow string, stage ports.Stage, state *domain.State) domain.ExecutionResult {
	if o.hooks.OnStageStart != nil {
		o.hooks.OnStageStart(ctx, &domain.StageEvent{
			Timestamp: time.Now().UTC(),
			SessionID: state.SessionID,
			Workflow:  workflow,
			Stage:     stage.Name(),
		})
	}

	runCtx := ctx
	cancel := context.CancelFunc(func() {})
	if o.stageTimeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, o.stageTimeout)
	}

	start := time.Now()
	result := stage.Run(runCtx, state)
	cancel()

	result.Stage = stage.Name()
	result.Duration = time.Since(start)

	for k, v := range result.Delta {
		state.Set(k, v)
	}

	if o.hooks.OnStageEnd != nil {
		o.hooks.OnStageEnd(ctx, &domain.StageEvent{
			Timestamp: time.Now().UTC(),
			SessionID: state.SessionID,
			Workflow:  workflow,
			Stage:     stage.Name(),
			Status:    result.Status,
			Duration:  result.Duration,
		})
	}

	o.logger.Debug("stage finished",
		"workflow", workflow,
		"stage", stage.Name(),
		"status", result.Status,
		"duration", result.Duration,
	)

	return result
}

// runBody executes a stage list in order, short-circuiting on the first
// failure. Returns the partial results and whether all stages succeeded.
func (o *options) runBody(ctx context.Context, workflow string, stages []ports.Stage, state *domain.State) ([]domain.ExecutionResult, bool) {
	results := make([]domain.ExecutionResult, 0, len(stages))
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			results = append(results, domain.StageFail(stage.Name(), "canceled: "+err.Error()))
			return results, false
		}

		result := o.runStage(ctx, workflow, stage, state)
		results = append(results, result)
		if !result.Succeeded() {
			return results, false
		}
	}
	return results, true
}
