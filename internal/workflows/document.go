package workflows

import (
	"context"
	"fmt"
	"regexp"

	"github.com/batuta-io/batuta/pkg/domain"
	"github.com/batuta-io/batuta/pkg/ports"
	"github.com/batuta-io/batuta/pkg/schema"
)

var documentPathPattern = regexp.MustCompile(`[\w./~-]+\.pdf\b`)

// locateDocumentStage finds the document path in the request message.
func locateDocumentStage() ports.Stage {
	return ports.StageFunc{
		StageName: "locate_document",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			if path := state.GetString(domain.KeyDocumentPath); path != "" {
				return domain.StageOK("locate_document", nil)
			}

			message := state.GetString(domain.KeyRequestMessage)
			path := documentPathPattern.FindString(message)
			if path == "" {
				return domain.StageFail("locate_document",
					"no document path found in request; include a file like requirements.pdf")
			}

			return domain.StageOK("locate_document", map[string]any{
				domain.KeyDocumentPath: path,
			})
		},
	}
}

// extractContentStage pulls structured content from the document.
func extractContentStage(docs ports.DocumentExtractor) ports.Stage {
	return ports.StageFunc{
		StageName: "extract_content",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			path := state.GetString(domain.KeyDocumentPath)
			if path == "" {
				return domain.StageFail("extract_content", "document path missing from state")
			}

			doc, err := docs.Extract(ctx, path)
			if err != nil {
				return domain.StageFail("extract_content", fmt.Sprintf("extraction failed: %v", err))
			}

			return domain.StageOK("extract_content", map[string]any{
				domain.KeyDocumentContent: *doc,
			})
		},
	}
}

// analyzeStructureStage summarizes the document organization.
func analyzeStructureStage(docs ports.DocumentExtractor) ports.Stage {
	return ports.StageFunc{
		StageName: "analyze_structure",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			doc, result := documentFromState(state, "analyze_structure")
			if doc == nil {
				return result
			}

			analysis, err := docs.AnalyzeStructure(doc)
			if err != nil {
				return domain.StageFail("analyze_structure", fmt.Sprintf("analysis failed: %v", err))
			}

			return domain.StageOK("analyze_structure", map[string]any{
				domain.KeyDocumentAnalysis: *analysis,
			})
		},
	}
}

// generateTestCasesStage derives test scenarios from the analysis.
func generateTestCasesStage(docs ports.DocumentExtractor) ports.Stage {
	return ports.StageFunc{
		StageName: "generate_test_cases",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			doc, result := documentFromState(state, "generate_test_cases")
			if doc == nil {
				return result
			}

			v, ok := state.Get(domain.KeyDocumentAnalysis)
			if !ok {
				return domain.StageFail("generate_test_cases", "document analysis missing from state")
			}
			analysis, err := schema.Decode[schema.DocumentAnalysis](v)
			if err != nil {
				return domain.StageFail("generate_test_cases", fmt.Sprintf("bad analysis payload: %v", err))
			}

			cases, err := docs.GenerateTestCases(doc, &analysis)
			if err != nil {
				return domain.StageFail("generate_test_cases", fmt.Sprintf("generation failed: %v", err))
			}

			return domain.StageOK("generate_test_cases", map[string]any{
				domain.KeyDocumentTestCases: cases,
			})
		},
	}
}

// documentFromState rehydrates the extracted document, or returns the
// failure result to bubble up when it is absent or malformed.
func documentFromState(state *domain.State, stage string) (*schema.Document, domain.ExecutionResult) {
	v, ok := state.Get(domain.KeyDocumentContent)
	if !ok {
		return nil, domain.StageFail(stage, "document content missing from state")
	}
	doc, err := schema.Decode[schema.Document](v)
	if err != nil {
		return nil, domain.StageFail(stage, fmt.Sprintf("bad document payload: %v", err))
	}
	return &doc, domain.ExecutionResult{}
}
