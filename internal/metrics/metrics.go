// Package metrics exposes pipeline execution counters and timings as
// Prometheus metrics. The Collector plugs into the engine through
// domain.LifecycleHooks, so the pipeline packages stay free of any
// metrics dependency.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/batuta-io/batuta/pkg/domain"
)

// Collector owns the metric vectors and the registry they live in.
type Collector struct {
	registry *prometheus.Registry

	pipelineRuns  *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	stageFailures *prometheus.CounterVec
}

// NewCollector creates a Collector with its own registry. A private
// registry keeps repeated construction (tests, embedded use) from
// panicking on duplicate registration.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		pipelineRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "batuta_pipeline_runs_total",
				Help: "Total number of pipeline runs by workflow and terminal status",
			},
			[]string{"workflow", "status"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "batuta_stage_duration_seconds",
				Help: "Duration of stage executions",
			},
			[]string{"workflow", "stage"},
		),
		stageFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "batuta_stage_failures_total",
				Help: "Total number of failed stage executions",
			},
			[]string{"workflow", "stage"},
		),
	}
	c.registry.MustRegister(c.pipelineRuns, c.stageDuration, c.stageFailures)
	return c
}

// Hooks returns lifecycle callbacks that record into this collector.
// Merge them with any other hooks before handing them to the pipelines.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPipelineEnd: func(ctx context.Context, e *domain.PipelineEvent) {
			c.pipelineRuns.WithLabelValues(e.Workflow, string(e.Status)).Inc()
		},
		OnStageEnd: func(ctx context.Context, e *domain.StageEvent) {
			c.stageDuration.WithLabelValues(e.Workflow, e.Stage).Observe(e.Duration.Seconds())
			if e.Status == domain.StageFailure {
				c.stageFailures.WithLabelValues(e.Workflow, e.Stage).Inc()
			}
		},
	}
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for callers that register
// additional collectors alongside the pipeline metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// MergeHooks chains two hook sets so both observe every event.
func MergeHooks(a, b domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPipelineStart: chainPipeline(a.OnPipelineStart, b.OnPipelineStart),
		OnPipelineEnd:   chainPipeline(a.OnPipelineEnd, b.OnPipelineEnd),
		OnStageStart:    chainStage(a.OnStageStart, b.OnStageStart),
		OnStageEnd:      chainStage(a.OnStageEnd, b.OnStageEnd),
	}
}

func chainPipeline(a, b func(context.Context, *domain.PipelineEvent)) func(context.Context, *domain.PipelineEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *domain.PipelineEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainStage(a, b func(context.Context, *domain.StageEvent)) func(context.Context, *domain.StageEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *domain.StageEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
