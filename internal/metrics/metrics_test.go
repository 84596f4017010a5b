package metrics

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batuta-io/batuta/pkg/domain"
)

func TestCollector_RecordsPipelineRuns(t *testing.T) {
	c := NewCollector()
	hooks := c.Hooks()
	ctx := context.Background()

	hooks.OnPipelineEnd(ctx, &domain.PipelineEvent{Workflow: "git_analysis", Status: domain.PipelineCompleted})
	hooks.OnPipelineEnd(ctx, &domain.PipelineEvent{Workflow: "git_analysis", Status: domain.PipelineCompleted})
	hooks.OnPipelineEnd(ctx, &domain.PipelineEvent{Workflow: "git_analysis", Status: domain.PipelineFailed})

	completed := testutil.ToFloat64(c.pipelineRuns.WithLabelValues("git_analysis", string(domain.PipelineCompleted)))
	failed := testutil.ToFloat64(c.pipelineRuns.WithLabelValues("git_analysis", string(domain.PipelineFailed)))
	assert.Equal(t, 2.0, completed)
	assert.Equal(t, 1.0, failed)
}

func TestCollector_RecordsStageFailures(t *testing.T) {
	c := NewCollector()
	hooks := c.Hooks()
	ctx := context.Background()

	hooks.OnStageEnd(ctx, &domain.StageEvent{
		Workflow: "git_analysis",
		Stage:    "clone_repository",
		Status:   domain.StageFailure,
		Duration: 50 * time.Millisecond,
	})
	hooks.OnStageEnd(ctx, &domain.StageEvent{
		Workflow: "git_analysis",
		Stage:    "clone_repository",
		Status:   domain.StageSuccess,
		Duration: 50 * time.Millisecond,
	})

	failures := testutil.ToFloat64(c.stageFailures.WithLabelValues("git_analysis", "clone_repository"))
	assert.Equal(t, 1.0, failures, "only failed stages count as failures")
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.Hooks().OnPipelineEnd(context.Background(),
		&domain.PipelineEvent{Workflow: "general", Status: domain.PipelineCompleted})

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "batuta_pipeline_runs_total")
}

func TestCollector_IndependentRegistries(t *testing.T) {
	// Two collectors must not panic on duplicate registration.
	assert.NotPanics(t, func() {
		NewCollector()
		NewCollector()
	})
}

func TestMergeHooks(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnStageEnd: func(context.Context, *domain.StageEvent) { calls = append(calls, "a") },
	}
	b := domain.LifecycleHooks{
		OnStageEnd:    func(context.Context, *domain.StageEvent) { calls = append(calls, "b") },
		OnPipelineEnd: func(context.Context, *domain.PipelineEvent) { calls = append(calls, "b-pipeline") },
	}

	merged := MergeHooks(a, b)
	merged.OnStageEnd(context.Background(), &domain.StageEvent{})
	merged.OnPipelineEnd(context.Background(), &domain.PipelineEvent{})

	assert.Equal(t, []string{"a", "b", "b-pipeline"}, calls)
	assert.Nil(t, merged.OnPipelineStart, "nil on both sides stays nil")
}
