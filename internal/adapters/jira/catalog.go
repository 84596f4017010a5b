package jira

import "github.com/batuta-io/batuta/pkg/schema"

// builtinTickets is the fixture catalog the client serves. It stands in
// for a real tracker connection during demos and offline use.
func builtinTickets() map[string]schema.Ticket {
	return map[string]schema.Ticket{
		"PROJ-123": {
			ID:          "PROJ-123",
			Title:       "Implement user authentication system",
			Description: "As a user, I want to be able to log in to the system securely so that I can access my personal dashboard.",
			Status:      "In Progress",
			Priority:    "High",
			Assignee:    "john.doe@company.com",
			Reporter:    "product.manager@company.com",
			AcceptanceCriteria: []string{
				"User can log in with valid email and password",
				"System displays error message for invalid credentials",
				"User session expires after 30 minutes of inactivity",
				"Password must meet complexity requirements",
				"Account locks after 5 failed login attempts",
			},
			Labels:     []string{"authentication", "security", "user-management"},
			Components: []string{"Frontend", "Backend", "Database"},
		},
		"STORY-456": {
			ID:          "STORY-456",
			Title:       "Add shopping cart functionality",
			Description: "Implement shopping cart where users can add, remove, and modify items before checkout.",
			Status:      "To Do",
			Priority:    "Medium",
			Assignee:    "jane.smith@company.com",
			Reporter:    "business.analyst@company.com",
			AcceptanceCriteria: []string{
				"Users can add items to cart from product pages",
				"Users can view cart contents and total price",
				"Users can modify quantities or remove items",
				"Cart persists across browser sessions",
				"Cart shows real-time inventory availability",
			},
			Labels:     []string{"e-commerce", "shopping", "frontend"},
			Components: []string{"Frontend", "API", "Database"},
		},
	}
}

// genericTicket backs unknown IDs so unknown references still produce a
// usable workflow run instead of a hard failure.
func genericTicket(id string) *schema.Ticket {
	return &schema.Ticket{
		ID:          id,
		Title:       "Generic ticket " + id,
		Description: "Placeholder ticket served for unknown references.",
		Status:      "Open",
		Priority:    "Medium",
		Assignee:    "unassigned",
		Reporter:    "system",
		AcceptanceCriteria: []string{
			"Implement the required functionality",
			"Add appropriate error handling",
			"Include unit tests",
			"Update documentation",
		},
		Labels:     []string{"feature", "development"},
		Components: []string{"Backend"},
	}
}
