package jira

import (
	"context"
	"strings"
)

// criteriaFieldNames are the common names teams give their acceptance
// criteria field.
var criteriaFieldNames = []string{
	"acceptance criteria",
	"acceptancecriteria",
	"acceptance_criteria",
	"definition of done",
	"dod",
}

// FindCriteriaField searches the field definitions for an acceptance
// criteria field and returns its ID, or "" when none matches.
func (c *Client) FindCriteriaField(ctx context.Context) (string, error) {
	fields, err := c.ListFields(ctx)
	if err != nil {
		return "", err
	}
	return MatchCriteriaField(fields), nil
}

// MatchCriteriaField returns the ID of the first field whose name looks like
// an acceptance criteria field, or "".
func MatchCriteriaField(fields []Field) string {
	for _, f := range fields {
		name := strings.ToLower(f.Name)
		for _, candidate := range criteriaFieldNames {
			if strings.Contains(name, candidate) {
				return f.ID
			}
		}
	}
	return ""
}
