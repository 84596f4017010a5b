package domain

import "time"

// StageStatus is the outcome of a single stage execution.
type StageStatus string

const (
	StageSuccess StageStatus = "success"
	StageFailure StageStatus = "failure"
	StageSkipped StageStatus = "skipped"
)

// ExecutionResult captures the outcome of one Stage run.
type ExecutionResult struct {
	Stage      string         `json:"stage"`
	Status     StageStatus    `json:"status"`
	Delta      map[string]any `json:"delta,omitempty"`
	Diagnostic string         `json:"diagnostic,omitempty"`
	Duration   time.Duration  `json:"duration,omitempty"`
}

// Succeeded reports whether the stage completed normally.
func (r ExecutionResult) Succeeded() bool {
	return r.Status == StageSuccess
}

// StageOK builds a successful result with the state deltas the stage produced.
func StageOK(stage string, delta map[string]any) ExecutionResult {
	return ExecutionResult{Stage: stage, Status: StageSuccess, Delta: delta}
}

// StageFail builds a failed result with a diagnostic message. Expected
// failures (missing input, tool error) go through here; they never panic.
func StageFail(stage, diagnostic string) ExecutionResult {
	return ExecutionResult{Stage: stage, Status: StageFailure, Diagnostic: diagnostic}
}

// PipelineStatus is the terminal status of a pipeline run.
type PipelineStatus string

const (
	PipelineCompleted PipelineStatus = "completed"
	PipelineFailed    PipelineStatus = "failed"

	// PipelineExhausted means a bounded loop hit its iteration cap without
	// satisfying the exit predicate. It is a distinct terminal status, not a
	// hard failure: the aggregator reports it as best effort.
	PipelineExhausted PipelineStatus = "exhausted-iterations"
)

// PipelineResult aggregates the per-stage outcomes of one pipeline run.
// Created fresh per run and discarded once the response is produced.
type PipelineResult struct {
	Workflow   string            `json:"workflow"`
	Status     PipelineStatus    `json:"status"`
	Stages     []ExecutionResult `json:"stages"`
	Iterations int               `json:"iterations,omitempty"`
	Snapshot   map[string]any    `json:"snapshot,omitempty"`
}

// Failed reports whether the run stopped on a stage failure.
func (r *PipelineResult) Failed() bool {
	return r.Status == PipelineFailed
}

// RequestPhase tracks the per-request state machine:
// Received -> Classified -> Dispatched -> Executing -> terminal.
type RequestPhase string

const (
	PhaseReceived   RequestPhase = "received"
	PhaseClassified RequestPhase = "classified"
	PhaseDispatched RequestPhase = "dispatched"
	PhaseExecuting  RequestPhase = "executing"
	PhaseCompleted  RequestPhase = "completed"
	PhaseFailed     RequestPhase = "failed"
	PhaseExhausted  RequestPhase = "exhausted"
)

// Terminal reports whether the phase ends the request.
func (p RequestPhase) Terminal() bool {
	switch p {
	case PhaseCompleted, PhaseFailed, PhaseExhausted:
		return true
	}
	return false
}
