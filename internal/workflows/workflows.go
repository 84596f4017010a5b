// Package workflows assembles the built-in pipelines and registers them
// under the names the classifier emits. Stages communicate exclusively
// through shared state deltas; tool side effects are behind the ports
// collaborators carried in Deps.
package workflows

import (
	"fmt"

	"github.com/batuta-io/batuta/pkg/classifier"
	"github.com/batuta-io/batuta/pkg/pipeline"
	"github.com/batuta-io/batuta/pkg/ports"
)

// DefaultLoopIterations caps the test refinement loop.
const DefaultLoopIterations = 3

// Deps carries the tool collaborators the stages delegate side effects to.
type Deps struct {
	Git       ports.RepositoryAnalyzer
	Tickets   ports.TicketSystem
	Documents ports.DocumentExtractor
	Scripts   ports.ScriptGenerator

	// LoopIterations bounds the test refinement loop. Zero means
	// DefaultLoopIterations.
	LoopIterations int
}

func (d Deps) validate() error {
	if d.Git == nil {
		return fmt.Errorf("workflows: repository analyzer is required")
	}
	if d.Tickets == nil {
		return fmt.Errorf("workflows: ticket system is required")
	}
	if d.Documents == nil {
		return fmt.Errorf("workflows: document extractor is required")
	}
	if d.Scripts == nil {
		return fmt.Errorf("workflows: script generator is required")
	}
	return nil
}

// Register builds every built-in workflow and adds it to the registry.
// The pipeline options (logger, hooks, stage timeout) apply to all of them.
func Register(reg *pipeline.Registry, deps Deps, opts ...pipeline.Option) error {
	if err := deps.validate(); err != nil {
		return err
	}

	iterations := deps.LoopIterations
	if iterations <= 0 {
		iterations = DefaultLoopIterations
	}

	reg.Register(pipeline.NewSequential(classifier.WorkflowGitAnalysis, []pipeline.Step{
		extractRepositoryStage(),
		cloneRepositoryStage(deps.Git),
		analyzeChangesStage(deps.Git),
		cleanupWorkspaceStage(deps.Git),
	}, opts...))

	reg.Register(pipeline.NewSequential(classifier.WorkflowGitPull, []pipeline.Step{
		extractRepositoryStage(),
		cloneRepositoryStage(deps.Git),
	}, opts...))

	reg.Register(pipeline.NewSequential(classifier.WorkflowJiraAnalysis, []pipeline.Step{
		extractTicketStage(),
		fetchTicketStage(deps.Tickets),
		extractRequirementsStage(deps.Tickets),
	}, opts...))

	reg.Register(pipeline.NewSequential(classifier.WorkflowJiraTestGeneration, []pipeline.Step{
		extractTicketStage(),
		fetchTicketStage(deps.Tickets),
		extractRequirementsStage(deps.Tickets),
		generateScenariosStage(deps.Tickets),
	}, opts...))

	reg.Register(pipeline.NewSequential(classifier.WorkflowPDFProcessing, []pipeline.Step{
		locateDocumentStage(),
		extractContentStage(deps.Documents),
		analyzeStructureStage(deps.Documents),
		generateTestCasesStage(deps.Documents),
	}, opts...))

	reg.Register(pipeline.NewSequential(classifier.WorkflowScriptGeneration, []pipeline.Step{
		planScriptStage(),
		generateScriptStage(deps.Scripts),
		validateScriptStage(deps.Scripts),
	}, opts...))

	reg.Register(pipeline.NewSequential(classifier.WorkflowTestGeneration, []pipeline.Step{
		designTestsStage(),
		implementTestsStage(),
		pipeline.NewLoop("test_refinement", []ports.Stage{
			runTestsStage(),
			refineTestsStage(),
		}, iterations, TestsPassed, opts...),
	}, opts...))

	reg.Register(pipeline.NewSequential(classifier.WorkflowCodeAnalysis, []pipeline.Step{
		analyzeCodeStage(),
	}, opts...))

	reg.Register(pipeline.NewSequential(classifier.WorkflowGeneral, []pipeline.Step{
		respondStage(),
	}, opts...))

	return nil
}
