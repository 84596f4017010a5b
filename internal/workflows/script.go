package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/batuta-io/batuta/pkg/domain"
	"github.com/batuta-io/batuta/pkg/ports"
	"github.com/batuta-io/batuta/pkg/schema"
)

// planScriptStage decides the script type and language from the request.
func planScriptStage() ports.Stage {
	return ports.StageFunc{
		StageName: "plan_script",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			message := state.GetString(domain.KeyRequestMessage)
			lower := strings.ToLower(message)

			scriptType := "general"
			switch {
			case strings.Contains(lower, "ci") || strings.Contains(lower, "pipeline") || strings.Contains(lower, "build"):
				scriptType = "ci_cd"
			case strings.Contains(lower, "deploy") || strings.Contains(lower, "docker") || strings.Contains(lower, "kubernetes"):
				scriptType = "deployment"
			case strings.Contains(lower, "test"):
				scriptType = "testing"
			}

			language := "python"
			if strings.Contains(lower, "bash") || strings.Contains(lower, "shell") {
				language = "bash"
			}
			// Deployment scripts are shell-first regardless of phrasing.
			if scriptType == "deployment" {
				language = "bash"
			}

			return domain.StageOK("plan_script", map[string]any{
				domain.KeyScriptRequirements: message,
				domain.KeyScriptType:         scriptType,
				domain.KeyLanguage:           language,
			})
		},
	}
}

// generateScriptStage renders the script from the plan.
func generateScriptStage(scripts ports.ScriptGenerator) ports.Stage {
	return ports.StageFunc{
		StageName: "generate_script",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			requirements := state.GetString(domain.KeyScriptRequirements)
			if requirements == "" {
				return domain.StageFail("generate_script", "script requirements missing from state")
			}

			script, err := scripts.Generate(requirements,
				state.GetString(domain.KeyScriptType),
				state.GetString(domain.KeyLanguage))
			if err != nil {
				return domain.StageFail("generate_script", fmt.Sprintf("generation failed: %v", err))
			}

			return domain.StageOK("generate_script", map[string]any{
				domain.KeyScriptGenerated: *script,
			})
		},
	}
}

// validateScriptStage runs syntax heuristics over the generated script.
func validateScriptStage(scripts ports.ScriptGenerator) ports.Stage {
	return ports.StageFunc{
		StageName: "validate_script",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			v, ok := state.Get(domain.KeyScriptGenerated)
			if !ok {
				return domain.StageFail("validate_script", "generated script missing from state")
			}
			script, err := schema.Decode[schema.Script](v)
			if err != nil {
				return domain.StageFail("validate_script", fmt.Sprintf("bad script payload: %v", err))
			}

			validation, err := scripts.Validate(script.Content, script.Language)
			if err != nil {
				return domain.StageFail("validate_script", fmt.Sprintf("validation failed: %v", err))
			}

			return domain.StageOK("validate_script", map[string]any{
				domain.KeyScriptValidation: *validation,
			})
		},
	}
}
