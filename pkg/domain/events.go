package domain

import (
	"context"
	"time"
)

// PipelineEvent describes a pipeline starting or finishing.
type PipelineEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	SessionID string         `json:"session_id"`
	Workflow  string         `json:"workflow"`
	Status    PipelineStatus `json:"status,omitempty"`
	Duration  time.Duration  `json:"duration,omitempty"`
}

// StageEvent describes a stage starting or finishing within a pipeline run.
type StageEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	SessionID string        `json:"session_id"`
	Workflow  string        `json:"workflow"`
	Stage     string        `json:"stage"`
	Status    StageStatus   `json:"status,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability. Any field may
// be nil; the engine only invokes the hooks that are set.
type LifecycleHooks struct {
	OnPipelineStart func(context.Context, *PipelineEvent)
	OnPipelineEnd   func(context.Context, *PipelineEvent)
	OnStageStart    func(context.Context, *StageEvent)
	OnStageEnd      func(context.Context, *StageEvent)
}
