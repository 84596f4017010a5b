package jira

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batuta-io/batuta/pkg/schema"
)

func TestExtractTicketID(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bare id", "Generate tests from JIRA ticket PROJ-123", "PROJ-123"},
		{"browse url", "see https://acme.atlassian.net/browse/STORY-456 for details", "STORY-456"},
		{"url wins over bare id", "ABC-1 and https://acme.atlassian.net/browse/XYZ-9", "XYZ-9"},
		{"none", "no ticket here", ""},
		{"lowercase not matched", "proj-123", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTicketID(tt.text))
		})
	}
}

func TestClient_Fetch(t *testing.T) {
	client := NewClient()
	ctx := context.Background()

	ticket, err := client.Fetch(ctx, "PROJ-123")
	require.NoError(t, err)
	assert.Equal(t, "Implement user authentication system", ticket.Title)
	assert.Equal(t, "High", ticket.Priority)
	assert.Len(t, ticket.AcceptanceCriteria, 5)
	assert.Equal(t, []string{"Frontend", "Backend", "Database"}, ticket.Components)
}

func TestClient_FetchByURL(t *testing.T) {
	client := NewClient()

	ticket, err := client.Fetch(context.Background(), "https://acme.atlassian.net/browse/STORY-456")
	require.NoError(t, err)
	assert.Equal(t, "STORY-456", ticket.ID)
	assert.Equal(t, "Add shopping cart functionality", ticket.Title)
}

func TestClient_FetchUnknownID(t *testing.T) {
	client := NewClient()

	ticket, err := client.Fetch(context.Background(), "UNKNOWN-999")
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN-999", ticket.ID)
	assert.Equal(t, "Open", ticket.Status)
	assert.NotEmpty(t, ticket.AcceptanceCriteria)
}

func TestClient_FetchInvalidRef(t *testing.T) {
	client := NewClient()

	_, err := client.Fetch(context.Background(), "not a ticket")
	assert.Error(t, err)

	_, err = client.Fetch(context.Background(), "https://example.com/nothing")
	assert.Error(t, err)
}

func TestClient_FetchIsolatedFromCatalog(t *testing.T) {
	client := NewClient()
	ctx := context.Background()

	first, err := client.Fetch(ctx, "PROJ-123")
	require.NoError(t, err)
	first.Title = "mutated"

	second, err := client.Fetch(ctx, "PROJ-123")
	require.NoError(t, err)
	assert.Equal(t, "Implement user authentication system", second.Title)
}

func TestClient_ExtractRequirements(t *testing.T) {
	client := NewClient()

	ticket, err := client.Fetch(context.Background(), "PROJ-123")
	require.NoError(t, err)

	reqs, err := client.ExtractRequirements(ticket)
	require.NoError(t, err)

	assert.Equal(t, "PROJ-123", reqs.TicketID)
	// Five acceptance criteria plus clauses mined from the description.
	assert.GreaterOrEqual(t, len(reqs.Functional), 5)
	for i, req := range reqs.Functional {
		assert.Equalf(t, "functional", req.Type, "requirement %d", i)
		assert.True(t, req.Testable)
	}

	// "securely" in the description triggers the security family.
	var kinds []string
	for _, nfr := range reqs.NonFunctional {
		kinds = append(kinds, nfr.Type)
	}
	assert.Contains(t, kinds, "security")

	// Three components means one integration point.
	require.Len(t, reqs.Integrations, 1)
	assert.Equal(t, []string{"Frontend", "Backend", "Database"}, reqs.Integrations[0].Components)
}

func TestClient_ExtractRequirements_ShortClausesFiltered(t *testing.T) {
	client := NewClient()

	reqs, err := client.ExtractRequirements(&schema.Ticket{
		ID:          "X-1",
		Description: "It must work.",
	})
	require.NoError(t, err)
	assert.Empty(t, reqs.Functional, "clauses of 10 characters or fewer are noise")
}

func TestClient_ExtractRequirements_SingleComponent(t *testing.T) {
	client := NewClient()

	reqs, err := client.ExtractRequirements(&schema.Ticket{ID: "X-1", Components: []string{"Backend"}})
	require.NoError(t, err)
	assert.Empty(t, reqs.Integrations, "integration points need more than one component")
}

func TestClient_ExtractRequirements_NilTicket(t *testing.T) {
	client := NewClient()
	_, err := client.ExtractRequirements(nil)
	assert.Error(t, err)
}

func TestClient_GenerateScenarios(t *testing.T) {
	client := NewClient()

	reqs := &schema.Requirements{
		TicketID: "PROJ-123",
		Functional: []schema.Requirement{
			{ID: "REQ-1", Description: "User can log in with valid email and password", Priority: "High", Testable: true},
			{ID: "REQ-2", Description: "Account locks after 5 failed login attempts", Priority: "High", Testable: true},
		},
		NonFunctional: []schema.Requirement{
			{ID: "NFR-1", Type: "security", Description: "Security requirement", Priority: "Medium", Testable: true},
		},
		Integrations: []schema.Integration{
			{Components: []string{"Frontend", "Backend"}, Description: "Integration between Frontend, Backend components"},
		},
	}

	scenarios, err := client.GenerateScenarios(reqs)
	require.NoError(t, err)

	// 2 functional x (positive + negative) + 1 NFR + 1 integration + 1 boundary.
	require.Len(t, scenarios, 7)

	counts := map[string]int{}
	for _, s := range scenarios {
		counts[s.TestType]++
	}
	assert.Equal(t, 2, counts["Functional"])
	assert.Equal(t, 2, counts["Negative"])
	assert.Equal(t, 1, counts["Security"])
	assert.Equal(t, 1, counts["Integration"])
	assert.Equal(t, 1, counts["Boundary"])

	// IDs are sequential and zero-padded.
	assert.Equal(t, "TS-001", scenarios[0].ID)
	assert.Equal(t, "TS-007", scenarios[6].ID)

	// Positive scenarios trace back to their requirement.
	assert.Equal(t, "REQ-1", scenarios[0].RequirementID)
	assert.Equal(t, "REQ-1", scenarios[1].RequirementID)
}

func TestClient_GenerateScenarios_EmptyRequirements(t *testing.T) {
	client := NewClient()

	scenarios, err := client.GenerateScenarios(&schema.Requirements{TicketID: "X-1"})
	require.NoError(t, err)

	// The boundary scenario is always emitted.
	require.Len(t, scenarios, 1)
	assert.Equal(t, "Boundary", scenarios[0].TestType)
}

func TestClient_GenerateScenarios_Nil(t *testing.T) {
	client := NewClient()
	_, err := client.GenerateScenarios(nil)
	assert.Error(t, err)
}
