/*
Package ports defines the driven ports (interfaces) for the Batuta engine.

These interfaces decouple the core orchestration logic from external
implementations, allowing the engine to work with various storage backends,
external tools, and signal sources.

# Key Interfaces

  - Stage: the atomic unit of pipeline work, reading and writing shared state.
  - Pipeline: an executable composition of stages (sequential or bounded loop).
  - StateStore: responsible for persisting and loading session State.
  - DistributedLocker: provides distributed locking for concurrent session access.
  - RepositoryAnalyzer, TicketSystem, DocumentExtractor, ScriptGenerator:
    the external tool collaborators consumed by workflow stages.
*/
package ports
