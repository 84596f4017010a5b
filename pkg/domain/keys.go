package domain

// Shared state keys, namespaced per workflow. Having them as constants (with
// typed payloads in pkg/schema) catches missing-field bugs at compile time
// instead of at runtime string-matching.
const (
	// Request namespace: seeded by the orchestrator before classification.
	KeyRequestMessage  = "request.message"
	KeyRequestWorkflow = "request.workflow"
	KeyRequestTask     = "request.task"
	KeySourceCode      = "request.source_code"
	KeyLanguage        = "request.language"

	// Git namespace.
	KeyGitRepositoryURL  = "git.repository_url"
	KeyGitBranch         = "git.branch"
	KeyGitLocalPath      = "git.local_path"
	KeyGitChanges        = "git.changes"
	KeyGitAffectedFiles  = "git.affected_files"
	KeyGitCommitMessages = "git.commit_messages"
	KeyGitSummary        = "git.summary"

	// Jira namespace.
	KeyJiraTicketID     = "jira.ticket_id"
	KeyJiraTicket       = "jira.ticket"
	KeyJiraRequirements = "jira.requirements"
	KeyJiraScenarios    = "jira.scenarios"

	// Document namespace.
	KeyDocumentPath      = "document.path"
	KeyDocumentContent   = "document.content"
	KeyDocumentAnalysis  = "document.analysis"
	KeyDocumentTestCases = "document.test_cases"

	// Script namespace.
	KeyScriptRequirements = "script.requirements"
	KeyScriptType         = "script.type"
	KeyScriptGenerated    = "script.generated"
	KeyScriptValidation   = "script.validation"

	// Test generation namespace.
	KeyTestDesign      = "test.design"
	KeyTestCode        = "test.code"
	KeyTestResults     = "test.results"
	KeyTestRefinements = "test.refinements"

	// Planning and reply namespaces.
	KeyStrategyPlan = "plan.strategy"
	KeyReply        = "reply.message"
)
