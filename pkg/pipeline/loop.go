package pipeline

import (
	"context"
	"time"

	"github.com/batuta-io/batuta/pkg/domain"
	"github.com/batuta-io/batuta/pkg/ports"
)

// ExitPredicate decides whether a loop may stop. It is evaluated against
// the shared state only after a full iteration, never mid-iteration.
type ExitPredicate func(*domain.State) bool

// Loop repeats a stage sequence until the exit predicate holds or the
// iteration cap is reached. The body always runs at least once.
//
// Hitting the cap is NOT a failure: the run ends with
// domain.PipelineExhausted and the aggregator surfaces it as best effort.
// A stage failure inside an iteration stops the loop immediately, exactly
// like a Sequential failure.
type Loop struct {
	name          string
	body          []ports.Stage
	maxIterations int
	exit          ExitPredicate
	opts          options
}

// NewLoop builds a bounded loop. maxIterations values below 1 are
// normalized to 1; a nil predicate never exits early.
func NewLoop(name string, body []ports.Stage, maxIterations int, exit ExitPredicate, opts ...Option) *Loop {
	if maxIterations < 1 {
		maxIterations = 1
	}
	return &Loop{
		name:          name,
		body:          body,
		maxIterations: maxIterations,
		exit:          exit,
		opts:          newOptions(opts),
	}
}

// Name returns the loop's name.
func (l *Loop) Name() string { return l.name }

// MaxIterations returns the configured iteration cap.
func (l *Loop) MaxIterations() int { return l.maxIterations }

// Run executes the loop against the shared state.
func (l *Loop) Run(ctx context.Context, state *domain.State) *domain.PipelineResult {
	result := &domain.PipelineResult{
		Workflow: l.name,
		Status:   domain.PipelineExhausted,
	}

	start := time.Now()
	if l.opts.hooks.OnPipelineStart != nil {
		l.opts.hooks.OnPipelineStart(ctx, &domain.PipelineEvent{
			Timestamp: start.UTC(),
			SessionID: state.SessionID,
			Workflow:  l.name,
		})
	}

	for i := 0; i < l.maxIterations; i++ {
		results, ok := l.opts.runBody(ctx, l.name, l.body, state)
		result.Stages = append(result.Stages, results...)
		result.Iterations = i + 1

		if !ok {
			result.Status = domain.PipelineFailed
			break
		}

		// Iteration i's deltas are fully committed before the predicate
		// runs, and before iteration i+1 begins.
		if l.exit != nil && l.exit(state) {
			result.Status = domain.PipelineCompleted
			break
		}
	}

	result.Snapshot = state.Snapshot()

	if l.opts.hooks.OnPipelineEnd != nil {
		l.opts.hooks.OnPipelineEnd(ctx, &domain.PipelineEvent{
			Timestamp: time.Now().UTC(),
			SessionID: state.SessionID,
			Workflow:  l.name,
			Status:    result.Status,
			Duration:  time.Since(start),
		})
	}

	l.opts.logger.Debug("loop finished",
		"loop", l.name,
		"iterations", result.Iterations,
		"status", result.Status,
	)

	return result
}
