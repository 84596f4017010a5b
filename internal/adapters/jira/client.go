// Package jira implements ports.TicketSystem against a built-in fixture
// catalog. The fetch path accepts both bare ticket IDs and Atlassian browse
// URLs; unknown IDs resolve to a generic ticket so every workflow run has
// material to work with.
package jira

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/batuta-io/batuta/pkg/schema"
)

var (
	ticketIDPattern  = regexp.MustCompile(`\b([A-Z]+-\d+)\b`)
	browseURLPattern = regexp.MustCompile(`/browse/([A-Z]+-\d+)`)
)

// Client implements ports.TicketSystem.
type Client struct {
	catalog map[string]schema.Ticket
}

// NewClient creates a Client backed by the built-in ticket catalog.
func NewClient() *Client {
	return &Client{catalog: builtinTickets()}
}

// ExtractTicketID finds the first ticket reference in free-form text,
// preferring browse URLs over bare IDs. Returns "" when none is present.
func ExtractTicketID(text string) string {
	if m := browseURLPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := ticketIDPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// Fetch retrieves a ticket by ID or browse URL.
func (c *Client) Fetch(ctx context.Context, ticketRef string) (*schema.Ticket, error) {
	id := ticketRef
	if strings.HasPrefix(ticketRef, "http") {
		id = ExtractTicketID(ticketRef)
	}
	if id == "" || !ticketIDPattern.MatchString(id) {
		return nil, fmt.Errorf("invalid ticket reference %q", ticketRef)
	}

	if t, ok := c.catalog[id]; ok {
		ticket := t
		return &ticket, nil
	}
	return genericTicket(id), nil
}

// requirementPatterns pull imperative clauses out of a ticket description.
var requirementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)must\s+([^.]+)`),
	regexp.MustCompile(`(?i)should\s+([^.]+)`),
	regexp.MustCompile(`(?i)shall\s+([^.]+)`),
	regexp.MustCompile(`(?i)will\s+([^.]+)`),
}

// nfrKeywords maps non-functional requirement families to the words that
// signal them in a description.
var nfrKeywords = []struct {
	kind     string
	keywords []string
}{
	{"performance", []string{"performance", "speed", "fast", "response time", "latency"}},
	{"security", []string{"security", "secure", "authentication", "authorization", "encrypt"}},
	{"usability", []string{"usability", "user-friendly", "intuitive", "easy"}},
	{"reliability", []string{"reliable", "availability", "uptime", "stable"}},
	{"scalability", []string{"scalable", "scale", "concurrent", "load"}},
}

// ExtractRequirements derives structured requirements from a ticket: each
// acceptance criterion becomes a functional requirement, imperative clauses
// in the description add more, keyword families flag non-functional
// requirements, and multi-component tickets produce an integration point.
func (c *Client) ExtractRequirements(ticket *schema.Ticket) (*schema.Requirements, error) {
	if ticket == nil {
		return nil, fmt.Errorf("ticket cannot be nil")
	}

	reqs := &schema.Requirements{TicketID: ticket.ID}

	priority := ticket.Priority
	if priority == "" {
		priority = "Medium"
	}

	for _, criterion := range ticket.AcceptanceCriteria {
		reqs.Functional = append(reqs.Functional, schema.Requirement{
			ID:          fmt.Sprintf("REQ-%d", len(reqs.Functional)+1),
			Description: criterion,
			Type:        "functional",
			Priority:    priority,
			Testable:    true,
		})
	}

	for _, pattern := range requirementPatterns {
		for _, m := range pattern.FindAllStringSubmatch(ticket.Description, -1) {
			clause := strings.TrimSpace(m[1])
			if len(clause) <= 10 {
				continue
			}
			reqs.Functional = append(reqs.Functional, schema.Requirement{
				ID:          fmt.Sprintf("REQ-%d", len(reqs.Functional)+1),
				Description: clause,
				Type:        "functional",
				Priority:    priority,
				Testable:    true,
			})
		}
	}

	lower := strings.ToLower(ticket.Description)
	for _, family := range nfrKeywords {
		if !containsAny(lower, family.keywords) {
			continue
		}
		reqs.NonFunctional = append(reqs.NonFunctional, schema.Requirement{
			ID:          fmt.Sprintf("NFR-%d", len(reqs.NonFunctional)+1),
			Description: fmt.Sprintf("%s requirement identified from ticket description", title(family.kind)),
			Type:        family.kind,
			Priority:    "Medium",
			Testable:    true,
		})
	}

	if len(ticket.Components) > 1 {
		reqs.Integrations = append(reqs.Integrations, schema.Integration{
			Components:  ticket.Components,
			Description: fmt.Sprintf("Integration between %s components", strings.Join(ticket.Components, ", ")),
		})
	}

	return reqs, nil
}

// GenerateScenarios produces test scenarios covering the requirements:
// one positive and one negative per functional requirement, one per
// non-functional family, one per integration point, plus a boundary
// scenario.
func (c *Client) GenerateScenarios(reqs *schema.Requirements) ([]schema.Scenario, error) {
	if reqs == nil {
		return nil, fmt.Errorf("requirements cannot be nil")
	}

	var scenarios []schema.Scenario
	next := func() string { return fmt.Sprintf("TS-%03d", len(scenarios)+1) }

	for _, req := range reqs.Functional {
		scenarios = append(scenarios, schema.Scenario{
			ID:             next(),
			Title:          fmt.Sprintf("Verify %s", truncate(req.Description, 50)),
			Description:    fmt.Sprintf("Test that the system correctly implements: %s", req.Description),
			Steps: []string{
				"Navigate to the relevant feature",
				"Perform the action described in the requirement",
				"Verify the expected behavior occurs",
			},
			ExpectedResult: req.Description,
			Priority:       req.Priority,
			TestType:       "Functional",
			RequirementID:  req.ID,
		})
		scenarios = append(scenarios, schema.Scenario{
			ID:             next(),
			Title:          fmt.Sprintf("Verify error handling for %s", truncate(req.Description, 50)),
			Description:    fmt.Sprintf("Test error handling and validation for: %s", req.Description),
			Steps: []string{
				"Navigate to the relevant feature",
				"Attempt invalid or boundary condition inputs",
				"Verify appropriate error handling occurs",
			},
			ExpectedResult: "System rejects invalid input with a clear error message",
			Priority:       req.Priority,
			TestType:       "Negative",
			RequirementID:  req.ID,
		})
	}

	for _, nfr := range reqs.NonFunctional {
		scenarios = append(scenarios, schema.Scenario{
			ID:             next(),
			Title:          fmt.Sprintf("Verify %s requirement", nfr.Type),
			Description:    fmt.Sprintf("Test %s aspect: %s", nfr.Type, nfr.Description),
			Steps: []string{
				fmt.Sprintf("Set up %s testing environment", nfr.Type),
				fmt.Sprintf("Execute %s test procedures", nfr.Type),
				fmt.Sprintf("Measure and verify %s metrics", nfr.Type),
			},
			ExpectedResult: fmt.Sprintf("System meets %s requirements as specified", nfr.Type),
			Priority:       nfr.Priority,
			TestType:       title(nfr.Type),
			RequirementID:  nfr.ID,
		})
	}

	for _, integration := range reqs.Integrations {
		scenarios = append(scenarios, schema.Scenario{
			ID:             next(),
			Title:          fmt.Sprintf("Verify integration between %s", strings.Join(integration.Components, ", ")),
			Description:    integration.Description,
			Steps: []string{
				"Set up test data in all involved components",
				"Execute the end-to-end workflow across components",
				"Verify data flow and communication between components",
			},
			ExpectedResult: "All components integrate correctly and data flows as expected",
			Priority:       "High",
			TestType:       "Integration",
			RequirementID:  "INTEGRATION-001",
		})
	}

	scenarios = append(scenarios, schema.Scenario{
		ID:          next(),
		Title:       "Verify behavior with edge cases and boundary conditions",
		Description: "Test with extreme values, empty inputs, and boundary conditions",
		Steps: []string{
			"Identify boundary values for all input fields",
			"Test with minimum and maximum allowed values",
			"Test with values just outside the allowed range",
			"Test with empty, null, and special character inputs",
		},
		ExpectedResult: "System handles all edge cases with appropriate validation",
		Priority:       "Medium",
		TestType:       "Boundary",
		RequirementID:  "EDGE-001",
	})

	return scenarios, nil
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
