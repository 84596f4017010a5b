package workflows

import (
	"context"
	"strings"

	"github.com/batuta-io/batuta/pkg/domain"
	"github.com/batuta-io/batuta/pkg/ports"
)

// respondStage is the catch-all for requests no specialized workflow
// claims. It acknowledges the request and lists what the engine can do.
func respondStage() ports.Stage {
	return ports.StageFunc{
		StageName: "respond",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			message := strings.TrimSpace(state.GetString(domain.KeyRequestMessage))
			if message == "" {
				return domain.StageFail("respond", "request message is empty")
			}

			reply := `I could not match your request to a specialized workflow. I can help with:

- **Git analysis**: "analyze changes in https://github.com/org/repo"
- **JIRA tickets**: "summarize ticket PROJ-123" or "generate tests for PROJ-123"
- **Documents**: "process requirements.pdf"
- **Scripts**: "generate a deployment script"
- **Test generation**: "write tests for the login handler"
- **Code review**: paste code in a fenced block and ask for analysis`

			return domain.StageOK("respond", map[string]any{
				domain.KeyReply: reply,
			})
		},
	}
}
