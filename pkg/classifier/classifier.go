// Package classifier maps free-form user requests to registered workflow
// names. It is a deterministic, total function: every input resolves to
// exactly one name, falling back to the "general" workflow.
package classifier

import (
	"fmt"
	"strings"

	"github.com/batuta-io/batuta/pkg/domain"
	"github.com/batuta-io/batuta/pkg/pipeline"
)

// Workflow names produced by the classifier. Every one of these must exist
// in the registry; Validate enforces that at startup.
const (
	WorkflowGitAnalysis        = "git_analysis"
	WorkflowGitPull            = "git_pull"
	WorkflowJiraAnalysis       = "jira_analysis"
	WorkflowJiraTestGeneration = "jira_test_generation"
	WorkflowPDFProcessing      = "pdf_processing"
	WorkflowScriptGeneration   = "script_generation"
	WorkflowTestGeneration     = "test_generation"
	WorkflowCodeAnalysis       = "code_analysis"
	WorkflowGeneral            = "general"
)

// Classifier selects a workflow for a raw request using an ordered keyword
// rule table. Precedence is fixed and documented: domain-specific families
// (git, then jira, then document, then script) win over the generic test
// pipeline, which wins over code analysis, which wins over the default.
type Classifier struct{}

// New creates a Classifier.
func New() *Classifier {
	return &Classifier{}
}

// keyword families, checked in precedence order.
var (
	gitKeywords        = []string{"git", "repository", "repo", "github", "gitlab"}
	gitAnalyzeKeywords = []string{"analyze", "changes", "diff", "commit"}
	jiraKeywords       = []string{"jira", "ticket", "issue", "story"}
	jiraTestKeywords   = []string{"test", "case", "scenario"}
	documentKeywords   = []string{"pdf", "document", "file"}
	scriptKeywords     = []string{"script", "automation", "generate"}
	testKeywords       = []string{"test", "unittest", "pytest"}
	codeKeywords       = []string{"analyze", "code", "review"}
)

// Classify maps a raw request to a workflow name. It is deterministic:
// the same message and state always yield the same name.
func (c *Classifier) Classify(message string, state *domain.State) string {
	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, gitKeywords):
		if containsAny(lower, gitAnalyzeKeywords) {
			return WorkflowGitAnalysis
		}
		return WorkflowGitPull

	case containsAny(lower, jiraKeywords):
		if containsAny(lower, jiraTestKeywords) {
			return WorkflowJiraTestGeneration
		}
		return WorkflowJiraAnalysis

	case containsAny(lower, documentKeywords):
		return WorkflowPDFProcessing

	case containsAny(lower, scriptKeywords):
		return WorkflowScriptGeneration

	case containsAny(lower, testKeywords):
		return WorkflowTestGeneration

	case containsAny(lower, codeKeywords):
		return WorkflowCodeAnalysis

	default:
		return WorkflowGeneral
	}
}

// Names returns every workflow name the classifier can produce.
func (c *Classifier) Names() []string {
	return []string{
		WorkflowGitAnalysis,
		WorkflowGitPull,
		WorkflowJiraAnalysis,
		WorkflowJiraTestGeneration,
		WorkflowPDFProcessing,
		WorkflowScriptGeneration,
		WorkflowTestGeneration,
		WorkflowCodeAnalysis,
		WorkflowGeneral,
	}
}

// Validate checks the classifier/registry consistency invariant: every
// name the classifier can emit must resolve in the registry. Run this at
// startup so a mismatch fails the process, not a request.
func (c *Classifier) Validate(reg *pipeline.Registry) error {
	for _, name := range c.Names() {
		if !reg.Has(name) {
			return fmt.Errorf("classifier output %q missing from registry: %w", name, domain.ErrWorkflowNotFound)
		}
	}
	return nil
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
