package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client handles Jira API interactions.
type Client struct {
	BaseURL    string
	Username   string
	APIToken   string
	HTTPClient *http.Client
}

// NewClient creates a new Jira client.
func NewClient(baseURL, username, apiToken string) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Username: username,
		APIToken: apiToken,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Authenticate verifies the credentials by calling the Current User endpoint.
func (c *Client) Authenticate(ctx context.Context) error {
	url := fmt.Sprintf("%s/rest/api/3/myself", c.BaseURL)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.Username, c.APIToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("authentication failed with status: %d", resp.StatusCode)
	}

	return nil
}

// SearchTickets runs a JQL query and returns the matching tickets with their
// summary, description and acceptance criteria. descField and criteriaField
// are the Jira field IDs to read the two text bodies from; descField may be
// empty to use the standard description field, criteriaField may be empty
// when no acceptance criteria field is configured.
func (c *Client) SearchTickets(ctx context.Context, jql, descField, criteriaField string) ([]Ticket, error) {
	if descField == "" {
		descField = "description"
	}

	fields := []string{"key", "summary", "status", "assignee", descField}
	if criteriaField != "" {
		fields = append(fields, criteriaField)
	}

	payload := map[string]interface{}{
		"jql":        jql,
		"fields":     fields,
		"maxResults": 100,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/rest/api/3/search", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.Username, c.APIToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to search tickets with status: %d, body: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Issues []struct {
			Key    string                 `json:"key"`
			Fields map[string]interface{} `json:"fields"`
		} `json:"issues"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	tickets := make([]Ticket, 0, len(result.Issues))
	for _, issue := range result.Issues {
		t := Ticket{Key: issue.Key}
		t.Summary, _ = issue.Fields["summary"].(string)
		t.Description = ExtractText(issue.Fields[descField])
		if criteriaField != "" {
			t.AcceptanceCriteria = ExtractText(issue.Fields[criteriaField])
		}
		if status, ok := issue.Fields["status"].(map[string]interface{}); ok {
			t.Status, _ = status["name"].(string)
		}
		if assignee, ok := issue.Fields["assignee"].(map[string]interface{}); ok {
			t.Assignee, _ = assignee["displayName"].(string)
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

// ListFields fetches all field definitions, including custom fields.
func (c *Client) ListFields(ctx context.Context) ([]Field, error) {
	url := fmt.Sprintf("%s/rest/api/3/field", c.BaseURL)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.Username, c.APIToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch fields with status: %d", resp.StatusCode)
	}

	var fields []Field
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return fields, nil
}

// UpdateField writes markdown content into the given field of a ticket. The
// content is converted to Atlassian Document Format so rich text fields keep
// their formatting.
func (c *Client) UpdateField(ctx context.Context, ticketKey, fieldID, content string) error {
	url := fmt.Sprintf("%s/rest/api/3/issue/%s", c.BaseURL, ticketKey)

	payload := map[string]interface{}{
		"fields": map[string]interface{}{
			fieldID: MarkdownToADF(content),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "PUT", url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.Username, c.APIToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to update field with status: %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
