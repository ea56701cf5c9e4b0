package jira

// Ticket is a trackable work item fetched from Jira.
type Ticket struct {
	Key                string `json:"key"`
	Summary            string `json:"summary"`
	Description        string `json:"description"`
	AcceptanceCriteria string `json:"acceptance_criteria,omitempty"`
	Status             string `json:"status,omitempty"`
	Assignee           string `json:"assignee,omitempty"`
}

// Field describes a Jira field definition, used to locate custom fields such
// as the acceptance criteria field.
type Field struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}
