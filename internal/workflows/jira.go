package workflows

import (
	"context"
	"fmt"
	"regexp"

	"github.com/batuta-io/batuta/pkg/domain"
	"github.com/batuta-io/batuta/pkg/ports"
	"github.com/batuta-io/batuta/pkg/schema"
)

var ticketRefPattern = regexp.MustCompile(`\b[A-Z]+-\d+\b`)

// extractTicketStage finds the ticket reference in the request message.
func extractTicketStage() ports.Stage {
	return ports.StageFunc{
		StageName: "extract_ticket",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			if id := state.GetString(domain.KeyJiraTicketID); id != "" {
				return domain.StageOK("extract_ticket", nil)
			}

			message := state.GetString(domain.KeyRequestMessage)
			id := ticketRefPattern.FindString(message)
			if id == "" {
				return domain.StageFail("extract_ticket",
					"no ticket reference found in request; include an ID like PROJ-123")
			}

			return domain.StageOK("extract_ticket", map[string]any{
				domain.KeyJiraTicketID: id,
			})
		},
	}
}

// fetchTicketStage retrieves the ticket from the tracker.
func fetchTicketStage(tickets ports.TicketSystem) ports.Stage {
	return ports.StageFunc{
		StageName: "fetch_ticket",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			id := state.GetString(domain.KeyJiraTicketID)
			if id == "" {
				return domain.StageFail("fetch_ticket", "ticket ID missing from state")
			}

			ticket, err := tickets.Fetch(ctx, id)
			if err != nil {
				return domain.StageFail("fetch_ticket", fmt.Sprintf("fetch failed: %v", err))
			}

			return domain.StageOK("fetch_ticket", map[string]any{
				domain.KeyJiraTicket: *ticket,
			})
		},
	}
}

// extractRequirementsStage derives structured requirements from the ticket.
func extractRequirementsStage(tickets ports.TicketSystem) ports.Stage {
	return ports.StageFunc{
		StageName: "extract_requirements",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			v, ok := state.Get(domain.KeyJiraTicket)
			if !ok {
				return domain.StageFail("extract_requirements", "ticket missing from state")
			}
			ticket, err := schema.Decode[schema.Ticket](v)
			if err != nil {
				return domain.StageFail("extract_requirements", fmt.Sprintf("bad ticket payload: %v", err))
			}

			reqs, err := tickets.ExtractRequirements(&ticket)
			if err != nil {
				return domain.StageFail("extract_requirements", fmt.Sprintf("extraction failed: %v", err))
			}

			return domain.StageOK("extract_requirements", map[string]any{
				domain.KeyJiraRequirements: *reqs,
			})
		},
	}
}

// generateScenariosStage turns the requirements into test scenarios.
func generateScenariosStage(tickets ports.TicketSystem) ports.Stage {
	return ports.StageFunc{
		StageName: "generate_scenarios",
		Fn: func(ctx context.Context, state *domain.State) domain.ExecutionResult {
			v, ok := state.Get(domain.KeyJiraRequirements)
			if !ok {
				return domain.StageFail("generate_scenarios", "requirements missing from state")
			}
			reqs, err := schema.Decode[schema.Requirements](v)
			if err != nil {
				return domain.StageFail("generate_scenarios", fmt.Sprintf("bad requirements payload: %v", err))
			}

			scenarios, err := tickets.GenerateScenarios(&reqs)
			if err != nil {
				return domain.StageFail("generate_scenarios", fmt.Sprintf("generation failed: %v", err))
			}

			return domain.StageOK("generate_scenarios", map[string]any{
				domain.KeyJiraScenarios: scenarios,
			})
		},
	}
}
