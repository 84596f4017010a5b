/*
Package domain contains the core domain models for the Batuta engine.

It defines the fundamental entities of pipeline orchestration, such as the
session State, stage and pipeline execution results, and lifecycle events.
This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - State: the per-session shared key/value store threaded through a pipeline run.
  - ExecutionResult: the outcome of a single Stage (status, deltas, diagnostic).
  - PipelineResult: the aggregated outcome of a pipeline run plus a terminal snapshot.
  - LifecycleHooks: observability callbacks fired around pipelines and stages.
*/
package domain
