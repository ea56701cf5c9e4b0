package generate

import (
	"fmt"
	"strings"

	"qadraft/internal/correlate"
	"qadraft/internal/github"
	"qadraft/internal/jira"
)

// maxBodyBytes bounds how much of a pull request description is serialized
// into the context.
const maxBodyBytes = 4000

// Context is the assembled payload for one ticket: ticket fields, the
// selected changes per repository and the extracted developer testing notes.
// It is built once and consumed once per pipeline pass.
type Context struct {
	Ticket    jira.Ticket
	Selection correlate.SelectionResult
	Notes     map[string]string
}

// Build assembles a generation context, extracting testing notes from every
// selected change body.
func Build(ticket jira.Ticket, selection correlate.SelectionResult) Context {
	notes := make(map[string]string)
	for repo, pr := range selection {
		if n := correlate.ExtractTestingNotes(pr.Body); n != "" {
			notes[repo] = n
		}
	}
	return Context{Ticket: ticket, Selection: selection, Notes: notes}
}

// Render serializes the context deterministically, repositories ordered by
// name. maxBytes bounds the total size: diff text is dropped or truncated
// first, then pull request descriptions; ticket summary, description and
// acceptance criteria are always kept in full. maxBytes <= 0 means
// unbounded.
func (c Context) Render(maxBytes int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("TICKET: %s\nSUMMARY: %s\n\nDESCRIPTION:\n%s\n",
		c.Ticket.Key, c.Ticket.Summary, orPlaceholder(c.Ticket.Description)))
	sb.WriteString(fmt.Sprintf("\nACCEPTANCE CRITERIA:\n%s\n", orPlaceholder(c.Ticket.AcceptanceCriteria)))

	repos := c.Selection.Repositories()
	var diffSections []string

	for _, repo := range repos {
		pr := c.Selection[repo]

		sb.WriteString(fmt.Sprintf("\nPULL REQUEST CONTEXT FROM %s - PR #%d:\n", repo, pr.Number))
		sb.WriteString(fmt.Sprintf("Title: %s\nState: %s\nAuthor: %s\n", pr.Title, pr.State, pr.Author))
		if pr.Body != "" {
			sb.WriteString(fmt.Sprintf("Description:\n%s\n", correlate.Truncate(pr.Body, maxBodyBytes)))
		}
		if notes := c.Notes[repo]; notes != "" {
			sb.WriteString(fmt.Sprintf("Developer testing notes:\n%s\n", notes))
		}
		if pr.Summary != nil {
			sb.WriteString(fmt.Sprintf("CODE CHANGES SUMMARY: %d files, +%d -%d lines\n",
				pr.Summary.TotalFiles, pr.Summary.Additions, pr.Summary.Deletions))
		}
		if section := renderDiffs(repo, pr); section != "" {
			diffSections = append(diffSections, section)
		}
	}

	// Diff text is the first thing sacrificed when the payload is too big.
	for _, section := range diffSections {
		if maxBytes > 0 {
			remaining := maxBytes - sb.Len()
			if remaining <= len(correlate.TruncationMarker) {
				break
			}
			section = correlate.Truncate(section, remaining)
		}
		sb.WriteString(section)
	}

	return sb.String()
}

func renderDiffs(repo string, pr github.PullRequest) string {
	if len(pr.Files) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\nDETAILED FILE CHANGES (%s):\n", repo))
	for _, f := range pr.Files {
		sb.WriteString(fmt.Sprintf("\n%s (%s) +%d -%d\n", f.Filename, f.Status, f.Additions, f.Deletions))
		if f.Patch != "" {
			sb.WriteString(fmt.Sprintf("```diff\n%s\n```\n", f.Patch))
		}
	}
	return sb.String()
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(not provided)"
	}
	return s
}
