package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/batuta-io/batuta/pkg/domain"
	"github.com/batuta-io/batuta/pkg/ports"
)

// Step is anything a Sequential can execute in order: a ports.Stage or a
// nested ports.Pipeline (typically a Loop).
type Step interface {
	Name() string
}

// Sequential executes its steps strictly in declaration order. Each step
// sees the cumulative state produced by all prior steps in the same run.
//
// Short-circuit policy: on the first stage failure the pipeline stops and
// returns status=failed with the partial result list. Completed stages'
// state mutations persist (at-least-partial-progress, no rollback).
type Sequential struct {
	name  string
	steps []Step
	opts  options
}

// NewSequential builds a sequential composition under the given workflow name.
func NewSequential(name string, steps []Step, opts ...Option) *Sequential {
	return &Sequential{
		name:  name,
		steps: steps,
		opts:  newOptions(opts),
	}
}

// Name returns the workflow name.
func (s *Sequential) Name() string { return s.name }

// Run executes the composition against the shared state.
func (s *Sequential) Run(ctx context.Context, state *domain.State) *domain.PipelineResult {
	result := &domain.PipelineResult{
		Workflow: s.name,
		Status:   domain.PipelineCompleted,
	}

	start := time.Now()
	if s.opts.hooks.OnPipelineStart != nil {
		s.opts.hooks.OnPipelineStart(ctx, &domain.PipelineEvent{
			Timestamp: start.UTC(),
			SessionID: state.SessionID,
			Workflow:  s.name,
		})
	}

	exhausted := false

steps:
	for _, step := range s.steps {
		switch st := step.(type) {
		case ports.Pipeline:
			sub := st.Run(ctx, state)
			result.Stages = append(result.Stages, sub.Stages...)
			result.Iterations += sub.Iterations
			switch sub.Status {
			case domain.PipelineFailed:
				result.Status = domain.PipelineFailed
				break steps
			case domain.PipelineExhausted:
				// Not a hard failure: remaining steps still run, but the
				// terminal status records the best-effort outcome.
				exhausted = true
			}
		case ports.Stage:
			stageResult := s.opts.runStage(ctx, s.name, st, state)
			result.Stages = append(result.Stages, stageResult)
			if !stageResult.Succeeded() {
				result.Status = domain.PipelineFailed
				break steps
			}
		default:
			// Registry misconfiguration, not user input.
			result.Stages = append(result.Stages, domain.StageFail(step.Name(),
				fmt.Sprintf("step %q is neither a Stage nor a Pipeline", step.Name())))
			result.Status = domain.PipelineFailed
			break steps
		}
	}

	if exhausted && result.Status == domain.PipelineCompleted {
		result.Status = domain.PipelineExhausted
	}

	result.Snapshot = state.Snapshot()

	if s.opts.hooks.OnPipelineEnd != nil {
		s.opts.hooks.OnPipelineEnd(ctx, &domain.PipelineEvent{
			Timestamp: time.Now().UTC(),
			SessionID: state.SessionID,
			Workflow:  s.name,
			Status:    result.Status,
			Duration:  time.Since(start),
		})
	}

	return result
}
