package pipeline

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batuta-io/batuta/pkg/domain"
	"github.com/batuta-io/batuta/pkg/ports"
)

// okStage succeeds and records its execution order in the shared state.
func okStage(name string) ports.Stage {
	return ports.StageFunc{
		StageName: name,
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			order, _ := state.Get("order")
			names, _ := order.([]string)
			return domain.StageOK(name, map[string]any{
				"order":       append(names, name),
				"ran." + name: true,
			})
		},
	}
}

func failStage(name, diagnostic string) ports.Stage {
	return ports.StageFunc{
		StageName: name,
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			return domain.StageFail(name, diagnostic)
		},
	}
}

func executionOrder(state *domain.State) []string {
	order, _ := state.Get("order")
	names, _ := order.([]string)
	return names
}

func TestSequential_RunsInOrder(t *testing.T) {
	p := NewSequential("wf", []Step{okStage("a"), okStage("b"), okStage("c")})
	state := domain.NewState("s", "u")

	result := p.Run(context.Background(), state)

	assert.Equal(t, domain.PipelineCompleted, result.Status)
	require.Len(t, result.Stages, 3)
	assert.Equal(t, []string{"a", "b", "c"}, executionOrder(state))
	assert.NotNil(t, result.Snapshot)
}

func TestSequential_ShortCircuitsOnFailure(t *testing.T) {
	p := NewSequential("wf", []Step{okStage("a"), failStage("b", "boom"), okStage("c")})
	state := domain.NewState("s", "u")

	result := p.Run(context.Background(), state)

	assert.Equal(t, domain.PipelineFailed, result.Status)
	assert.True(t, result.Failed())

	// Exactly two results: A succeeded, B failed, C never ran.
	require.Len(t, result.Stages, 2)
	assert.Equal(t, "a", result.Stages[0].Stage)
	assert.Equal(t, "b", result.Stages[1].Stage)
	assert.Equal(t, "boom", result.Stages[1].Diagnostic)

	// A's state mutations persist; no rollback.
	assert.Equal(t, []string{"a"}, executionOrder(state))
	_, ranC := state.Get("ran.c")
	assert.False(t, ranC)
}

func TestSequential_CumulativeState(t *testing.T) {
	first := ports.StageFunc{
		StageName: "produce",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			return domain.StageOK("produce", map[string]any{"value": 42})
		},
	}
	second := ports.StageFunc{
		StageName: "consume",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			v, ok := state.Get("value")
			if !ok {
				return domain.StageFail("consume", "value missing")
			}
			return domain.StageOK("consume", map[string]any{"doubled": v.(int) * 2})
		},
	}

	state := domain.NewState("s", "u")
	result := NewSequential("wf", []Step{first, second}).Run(context.Background(), state)

	require.Equal(t, domain.PipelineCompleted, result.Status)
	doubled, _ := state.Get("doubled")
	assert.Equal(t, 84, doubled)
}

func TestLoop_ExhaustsAtCap(t *testing.T) {
	loop := NewLoop("retry", []ports.Stage{okStage("body")}, 3, func(*domain.State) bool { return false })
	state := domain.NewState("s", "u")

	result := loop.Run(context.Background(), state)

	assert.Equal(t, domain.PipelineExhausted, result.Status)
	assert.Equal(t, 3, result.Iterations)
	assert.Len(t, result.Stages, 3, "one body execution per iteration")
	assert.False(t, result.Failed(), "exhaustion is not a failure")
}

func TestLoop_ExitsWhenPredicateHolds(t *testing.T) {
	loop := NewLoop("retry", []ports.Stage{okStage("body")}, 5, func(state *domain.State) bool {
		_, ok := state.Get("ran.body")
		return ok
	})
	state := domain.NewState("s", "u")

	result := loop.Run(context.Background(), state)

	assert.Equal(t, domain.PipelineCompleted, result.Status)
	assert.Equal(t, 1, result.Iterations, "predicate holds after the first full iteration")
}

func TestLoop_PredicateSeesCommittedDeltas(t *testing.T) {
	// The predicate reads a counter the body increments via its delta: the
	// delta must be committed before the predicate runs.
	counter := ports.StageFunc{
		StageName: "count",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			n, _ := state.Get("n")
			current, _ := n.(int)
			return domain.StageOK("count", map[string]any{"n": current + 1})
		},
	}

	loop := NewLoop("retry", []ports.Stage{counter}, 10, func(state *domain.State) bool {
		n, _ := state.Get("n")
		return n == 2
	})
	state := domain.NewState("s", "u")

	result := loop.Run(context.Background(), state)
	assert.Equal(t, domain.PipelineCompleted, result.Status)
	assert.Equal(t, 2, result.Iterations)
}

func TestLoop_FailureStopsIteration(t *testing.T) {
	loop := NewLoop("retry", []ports.Stage{failStage("body", "broken")}, 3, nil)
	state := domain.NewState("s", "u")

	result := loop.Run(context.Background(), state)

	assert.Equal(t, domain.PipelineFailed, result.Status)
	assert.Equal(t, 1, result.Iterations, "no retry after a stage failure")
}

func TestLoop_NormalizesIterationCap(t *testing.T) {
	assert.Equal(t, 1, NewLoop("l", nil, 0, nil).MaxIterations())
	assert.Equal(t, 1, NewLoop("l", nil, -5, nil).MaxIterations())
	assert.Equal(t, 7, NewLoop("l", nil, 7, nil).MaxIterations())
}

func TestSequential_NestedLoopExhaustion(t *testing.T) {
	loop := NewLoop("inner", []ports.Stage{okStage("body")}, 2, func(*domain.State) bool { return false })
	p := NewSequential("wf", []Step{okStage("a"), loop, okStage("z")})
	state := domain.NewState("s", "u")

	result := p.Run(context.Background(), state)

	// The step after the exhausted loop still runs, but the terminal
	// status records the non-convergence.
	assert.Equal(t, domain.PipelineExhausted, result.Status)
	assert.Equal(t, 2, result.Iterations)
	_, ranZ := state.Get("ran.z")
	assert.True(t, ranZ)
}

func TestSequential_NestedLoopFailure(t *testing.T) {
	loop := NewLoop("inner", []ports.Stage{failStage("body", "broken")}, 2, nil)
	p := NewSequential("wf", []Step{okStage("a"), loop, okStage("z")})
	state := domain.NewState("s", "u")

	result := p.Run(context.Background(), state)

	assert.Equal(t, domain.PipelineFailed, result.Status)
	_, ranZ := state.Get("ran.z")
	assert.False(t, ranZ)
}

func TestOptions_HooksFire(t *testing.T) {
	var mu sync.Mutex
	var events []string

	hooks := domain.LifecycleHooks{
		OnPipelineStart: func(ctx context.Context, e *domain.PipelineEvent) {
			mu.Lock()
			events = append(events, "pipeline-start:"+e.Workflow)
			mu.Unlock()
		},
		OnPipelineEnd: func(ctx context.Context, e *domain.PipelineEvent) {
			mu.Lock()
			events = append(events, "pipeline-end:"+string(e.Status))
			mu.Unlock()
		},
		OnStageStart: func(ctx context.Context, e *domain.StageEvent) {
			mu.Lock()
			events = append(events, "stage-start:"+e.Stage)
			mu.Unlock()
		},
		OnStageEnd: func(ctx context.Context, e *domain.StageEvent) {
			mu.Lock()
			events = append(events, "stage-end:"+e.Stage)
			mu.Unlock()
		},
	}

	p := NewSequential("wf", []Step{okStage("a")}, WithHooks(hooks))
	p.Run(context.Background(), domain.NewState("s", "u"))

	assert.Equal(t, []string{
		"pipeline-start:wf",
		"stage-start:a",
		"stage-end:a",
		"pipeline-end:completed",
	}, events)
}

func TestOptions_StageTimeout(t *testing.T) {
	slow := ports.StageFunc{
		StageName: "slow",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			select {
			case <-ctx.Done():
				return domain.StageFail("slow", "deadline exceeded")
			case <-time.After(5 * time.Second):
				return domain.StageOK("slow", nil)
			}
		},
	}

	p := NewSequential("wf", []Step{slow}, WithStageTimeout(10*time.Millisecond))
	result := p.Run(context.Background(), domain.NewState("s", "u"))

	assert.Equal(t, domain.PipelineFailed, result.Status)
	assert.Contains(t, result.Stages[0].Diagnostic, "deadline")
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	assert.False(t, reg.Has("wf"))

	_, err := reg.Resolve("wf")
	assert.ErrorIs(t, err, domain.ErrWorkflowNotFound)

	reg.Register(NewSequential("wf", nil))
	assert.True(t, reg.Has("wf"))

	p, err := reg.Resolve("wf")
	require.NoError(t, err)
	assert.Equal(t, "wf", p.Name())

	reg.Register(NewSequential("aa", nil))
	assert.Equal(t, []string{"aa", "wf"}, reg.Names())
}

func TestStageDurationRecorded(t *testing.T) {
	p := NewSequential("wf", []Step{okStage("a")})
	result := p.Run(context.Background(), domain.NewState("s", "u"))

	require.Len(t, result.Stages, 1)
	assert.Greater(t, result.Stages[0].Duration, time.Duration(0))
}
