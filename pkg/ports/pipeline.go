package ports

import (
	"context"

	"github.com/batuta-io/batuta/pkg/domain"
)

// Stage is the atomic unit of pipeline work.
//
// A Stage never observes pipeline structure; it is pure with respect to
// everything except the shared State. Side effects (subprocess, network,
// file I/O) must be confined to the tool collaborators. Expected failures
// are signalled through the returned ExecutionResult, never by panicking.
type Stage interface {
	// Name returns the stage identifier used in results and logs.
	Name() string

	// Run executes the stage against the shared state. Implementations
	// should observe ctx between, not during, state mutations.
	Run(ctx context.Context, state *domain.State) domain.ExecutionResult
}

// StageFunc adapts a function to the Stage interface.
type StageFunc struct {
	StageName string
	Fn        func(ctx context.Context, state *domain.State) domain.ExecutionResult
}

func (s StageFunc) Name() string { return s.StageName }

func (s StageFunc) Run(ctx context.Context, state *domain.State) domain.ExecutionResult {
	return s.Fn(ctx, state)
}

// Pipeline executes an ordered composition of stages against shared state.
type Pipeline interface {
	// Name returns the workflow name the pipeline is registered under.
	Name() string

	// Run executes the composition. Stage failures are converted into the
	// PipelineResult status; only unexpected programming errors propagate.
	Run(ctx context.Context, state *domain.State) *domain.PipelineResult
}
