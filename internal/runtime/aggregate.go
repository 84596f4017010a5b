package runtime

import (
	"fmt"
	"strings"

	"github.com/batuta-io/batuta/pkg/classifier"
	"github.com/batuta-io/batuta/pkg/domain"
	"github.com/batuta-io/batuta/pkg/schema"
)

// BuildReply renders the user-facing answer for a finished run. Failures
// report the failing stage; exhausted runs are labelled best effort rather
// than hidden.
func BuildReply(workflow string, result *domain.PipelineResult, state *domain.State) string {
	if result.Failed() {
		return failureReply(workflow, result)
	}

	var b strings.Builder

	if result.Status == domain.PipelineExhausted {
		fmt.Fprintf(&b, "Best effort after %d attempts; the result below did not fully converge.\n\n", result.Iterations)
	}

	switch workflow {
	case classifier.WorkflowGitAnalysis:
		gitAnalysisReply(&b, state)
	case classifier.WorkflowGitPull:
		fmt.Fprintf(&b, "Cloned %s (branch %s) to %s.\n",
			state.GetString(domain.KeyGitRepositoryURL),
			state.GetString(domain.KeyGitBranch),
			state.GetString(domain.KeyGitLocalPath))
	case classifier.WorkflowJiraAnalysis:
		jiraAnalysisReply(&b, state)
	case classifier.WorkflowJiraTestGeneration:
		jiraScenariosReply(&b, state)
	case classifier.WorkflowPDFProcessing:
		documentReply(&b, state)
	case classifier.WorkflowScriptGeneration:
		scriptReply(&b, state)
	case classifier.WorkflowTestGeneration:
		testGenerationReply(&b, state, result)
	default:
		// code_analysis and general write the reply themselves.
		if reply := state.GetString(domain.KeyReply); reply != "" {
			b.WriteString(reply)
		} else {
			fmt.Fprintf(&b, "Workflow %s completed.", workflow)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func failureReply(workflow string, result *domain.PipelineResult) string {
	for _, stage := range result.Stages {
		if stage.Status == domain.StageFailure {
			return fmt.Sprintf("Workflow %s failed at stage %s: %s", workflow, stage.Stage, stage.Diagnostic)
		}
	}
	return fmt.Sprintf("Workflow %s failed.", workflow)
}

func gitAnalysisReply(b *strings.Builder, state *domain.State) {
	fmt.Fprintf(b, "## Repository analysis\n\n%s\n", state.GetString(domain.KeyGitSummary))

	if files, err := schema.DecodeSlice[string](state.Values[domain.KeyGitAffectedFiles]); err == nil && len(files) > 0 {
		b.WriteString("\nAffected files:\n")
		for _, f := range files {
			fmt.Fprintf(b, "- %s\n", f)
		}
	}
	if messages, err := schema.DecodeSlice[string](state.Values[domain.KeyGitCommitMessages]); err == nil && len(messages) > 0 {
		b.WriteString("\nRecent commits:\n")
		for _, m := range messages {
			fmt.Fprintf(b, "- %s\n", m)
		}
	}
}

func jiraAnalysisReply(b *strings.Builder, state *domain.State) {
	ticket, err := schema.Decode[schema.Ticket](state.Values[domain.KeyJiraTicket])
	if err != nil {
		b.WriteString("Ticket analysis completed.")
		return
	}

	fmt.Fprintf(b, "## %s: %s\n\nStatus: %s | Priority: %s\n\n%s\n",
		ticket.ID, ticket.Title, ticket.Status, ticket.Priority, ticket.Description)

	if reqs, err := schema.Decode[schema.Requirements](state.Values[domain.KeyJiraRequirements]); err == nil {
		fmt.Fprintf(b, "\nExtracted %d functional and %d non-functional requirements.\n",
			len(reqs.Functional), len(reqs.NonFunctional))
	}
}

func jiraScenariosReply(b *strings.Builder, state *domain.State) {
	scenarios, err := schema.DecodeSlice[schema.Scenario](state.Values[domain.KeyJiraScenarios])
	if err != nil || len(scenarios) == 0 {
		b.WriteString("No test scenarios were generated.")
		return
	}

	fmt.Fprintf(b, "## Test scenarios for %s\n\n", state.GetString(domain.KeyJiraTicketID))
	for _, s := range scenarios {
		fmt.Fprintf(b, "### %s: %s\n%s\n\nExpected: %s (%s, %s)\n\n",
			s.ID, s.Title, s.Description, s.ExpectedResult, s.TestType, s.Priority)
	}
}

func documentReply(b *strings.Builder, state *domain.State) {
	doc, err := schema.Decode[schema.Document](state.Values[domain.KeyDocumentContent])
	if err != nil {
		b.WriteString("Document processing completed.")
		return
	}

	fmt.Fprintf(b, "## %s\n\n", doc.Title)
	if analysis, err := schema.Decode[schema.DocumentAnalysis](state.Values[domain.KeyDocumentAnalysis]); err == nil {
		fmt.Fprintf(b, "%s\n", analysis.Summary)
	}
	if cases, err := schema.DecodeSlice[schema.Scenario](state.Values[domain.KeyDocumentTestCases]); err == nil {
		fmt.Fprintf(b, "\nGenerated %d test cases:\n", len(cases))
		for _, c := range cases {
			fmt.Fprintf(b, "- %s: %s\n", c.ID, c.Title)
		}
	}
}

func scriptReply(b *strings.Builder, state *domain.State) {
	script, err := schema.Decode[schema.Script](state.Values[domain.KeyScriptGenerated])
	if err != nil {
		b.WriteString("Script generation completed.")
		return
	}

	fmt.Fprintf(b, "## %s\n\n```%s\n%s\n```\n\n%s\n", script.Title, script.Language, script.Content, script.Usage)

	if validation, err := schema.Decode[schema.ScriptValidation](state.Values[domain.KeyScriptValidation]); err == nil {
		if validation.Valid {
			b.WriteString("\nValidation: passed.\n")
		} else {
			fmt.Fprintf(b, "\nValidation found issues: %s\n", strings.Join(validation.Issues, "; "))
		}
		for _, s := range validation.Suggestions {
			fmt.Fprintf(b, "- suggestion: %s\n", s)
		}
	}
}

func testGenerationReply(b *strings.Builder, state *domain.State, result *domain.PipelineResult) {
	fmt.Fprintf(b, "## Generated tests\n\n```%s\n%s\n```\n",
		state.GetString(domain.KeyLanguage),
		state.GetString(domain.KeyTestCode))

	if notes, err := schema.DecodeSlice[string](state.Values[domain.KeyTestRefinements]); err == nil && len(notes) > 0 {
		fmt.Fprintf(b, "\nRefined over %d iterations:\n", result.Iterations)
		for _, n := range notes {
			fmt.Fprintf(b, "- %s\n", n)
		}
	}
}
