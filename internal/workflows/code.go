package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/batuta-io/batuta/pkg/domain"
	"github.com/batuta-io/batuta/pkg/ports"
)

// analyzeCodeStage reviews source code carried in the request, either as
// an explicit payload or inside a fenced block in the message.
func analyzeCodeStage() ports.Stage {
	return ports.StageFunc{
		StageName: "analyze_code",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			source := state.GetString(domain.KeySourceCode)
			if source == "" {
				source = fencedBlock(state.GetString(domain.KeyRequestMessage))
			}
			if source == "" {
				return domain.StageFail("analyze_code",
					"no source code provided; attach the code or paste it in a fenced block")
			}

			language := state.GetString(domain.KeyLanguage)
			if language == "" {
				language = detectLanguage(source)
			}

			lines := strings.Split(source, "\n")
			var findings []string
			for i, line := range lines {
				trimmed := strings.TrimSpace(line)
				if strings.Contains(trimmed, "TODO") || strings.Contains(trimmed, "FIXME") {
					findings = append(findings, fmt.Sprintf("line %d: unresolved %s marker", i+1, markerIn(trimmed)))
				}
				if len(line) > 120 {
					findings = append(findings, fmt.Sprintf("line %d: exceeds 120 characters", i+1))
				}
			}

			var b strings.Builder
			fmt.Fprintf(&b, "## Code review\n\nLanguage: %s\nLines: %d\n\n", language, len(lines))
			if len(findings) == 0 {
				b.WriteString("No issues found.\n")
			} else {
				fmt.Fprintf(&b, "Findings (%d):\n", len(findings))
				for _, f := range findings {
					fmt.Fprintf(&b, "- %s\n", f)
				}
			}

			return domain.StageOK("analyze_code", map[string]any{
				domain.KeyLanguage: language,
				domain.KeyReply:    b.String(),
			})
		},
	}
}

// fencedBlock pulls the contents of the first ``` block out of a message.
func fencedBlock(message string) string {
	open := strings.Index(message, "```")
	if open == -1 {
		return ""
	}
	rest := message[open+3:]
	// Skip an optional language tag on the opening fence.
	if nl := strings.Index(rest, "\n"); nl != -1 {
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, "```")
	if end == -1 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}

func markerIn(line string) string {
	if strings.Contains(line, "FIXME") {
		return "FIXME"
	}
	return "TODO"
}

// detectLanguage guesses the source language from surface syntax.
func detectLanguage(source string) string {
	switch {
	case strings.Contains(source, "func ") && strings.Contains(source, "package "):
		return "go"
	case strings.Contains(source, "def ") || strings.Contains(source, "import "):
		return "python"
	case strings.Contains(source, "function ") || strings.Contains(source, "=>"):
		return "javascript"
	default:
		return "unknown"
	}
}
