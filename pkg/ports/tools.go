package ports

import (
	"context"

	"github.com/batuta-io/batuta/pkg/schema"
)

// CloneResult is the outcome of cloning a repository for analysis.
type CloneResult struct {
	LocalPath  string
	Branch     string
	CommitHash string
}

// RepositoryAnalyzer inspects git repositories. Errors (clone timeout,
// invalid path, process failure) are non-fatal to the core and surface as
// stage failures.
type RepositoryAnalyzer interface {
	// Clone fetches the repository at url into a temporary directory.
	Clone(ctx context.Context, url, branch string) (*CloneResult, error)

	// Diff analyzes changes in a local repository since the given commit
	// (or the previous commit when since is empty).
	Diff(ctx context.Context, localPath, since string) (*schema.GitAnalysis, error)

	// Cleanup removes a previously cloned working directory.
	Cleanup(localPath string) error
}

// TicketSystem provides access to an issue tracker.
type TicketSystem interface {
	// Fetch retrieves a ticket by ID or browse URL.
	// Returns domain-level not-found semantics via error.
	Fetch(ctx context.Context, ticketRef string) (*schema.Ticket, error)

	// ExtractRequirements derives structured requirements from a ticket.
	ExtractRequirements(ticket *schema.Ticket) (*schema.Requirements, error)

	// GenerateScenarios produces test scenarios covering the requirements.
	GenerateScenarios(reqs *schema.Requirements) ([]schema.Scenario, error)
}

// DocumentExtractor pulls structured content out of documents.
type DocumentExtractor interface {
	// Extract reads a document from a path or URL.
	Extract(ctx context.Context, pathOrURL string) (*schema.Document, error)

	// AnalyzeStructure summarizes the document's organization.
	AnalyzeStructure(doc *schema.Document) (*schema.DocumentAnalysis, error)

	// GenerateTestCases derives test scenarios from the analysis.
	GenerateTestCases(doc *schema.Document, analysis *schema.DocumentAnalysis) ([]schema.Scenario, error)
}

// ScriptGenerator produces and checks automation scripts.
type ScriptGenerator interface {
	// Generate builds a script from free-form requirements.
	Generate(requirements, scriptType, language string) (*schema.Script, error)

	// Validate runs syntax heuristics over script content.
	Validate(content, language string) (*schema.ScriptValidation, error)
}
