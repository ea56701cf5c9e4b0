package jira

import "context"

// Source is the ticket-facing surface the pipeline needs: search tickets by
// query and write generated content back to a field.
type Source interface {
	SearchTickets(ctx context.Context, jql, descField, criteriaField string) ([]Ticket, error)
	UpdateField(ctx context.Context, ticketKey, fieldID, content string) error
}
