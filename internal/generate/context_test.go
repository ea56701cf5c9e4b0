package generate

import (
	"strings"
	"testing"

	"qadraft/internal/correlate"
	"qadraft/internal/github"
	"qadraft/internal/jira"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTicket() jira.Ticket {
	return jira.Ticket{
		Key:                "QA-1",
		Summary:            "Add login endpoint",
		Description:        "Users can authenticate with email and password.",
		AcceptanceCriteria: "Given valid credentials, a session is created.",
	}
}

func TestBuild(t *testing.T) {
	selection := correlate.SelectionResult{
		"acme/web": {
			Repository: "acme/web",
			Number:     12,
			Body:       "## Testing Instructions\n\nlog in twice",
		},
		"acme/api": {
			Repository: "acme/api",
			Number:     3,
			Body:       "no guidance here",
		},
	}

	gc := Build(sampleTicket(), selection)

	require.Contains(t, gc.Notes, "acme/web")
	assert.Equal(t, "log in twice", gc.Notes["acme/web"])
	assert.NotContains(t, gc.Notes, "acme/api")
}

func TestContext_Render(t *testing.T) {
	t.Run("deterministic repository order", func(t *testing.T) {
		selection := correlate.SelectionResult{
			"zeta/api": {Repository: "zeta/api", Number: 1, Title: "QA-1 z"},
			"acme/web": {Repository: "acme/web", Number: 2, Title: "QA-1 a"},
		}
		gc := Build(sampleTicket(), selection)

		first := gc.Render(0)
		second := gc.Render(0)
		assert.Equal(t, first, second)
		assert.Less(t, strings.Index(first, "acme/web"), strings.Index(first, "zeta/api"))
	})

	t.Run("ticket fields always present", func(t *testing.T) {
		gc := Build(sampleTicket(), correlate.SelectionResult{})
		out := gc.Render(0)

		assert.Contains(t, out, "TICKET: QA-1")
		assert.Contains(t, out, "Add login endpoint")
		assert.Contains(t, out, "Users can authenticate")
		assert.Contains(t, out, "Given valid credentials")
	})

	t.Run("missing fields get a placeholder", func(t *testing.T) {
		gc := Build(jira.Ticket{Key: "QA-2", Summary: "Bare ticket"}, correlate.SelectionResult{})
		out := gc.Render(0)
		assert.Contains(t, out, "(not provided)")
	})

	t.Run("diff sections are included when budget allows", func(t *testing.T) {
		selection := correlate.SelectionResult{
			"acme/web": {
				Repository: "acme/web",
				Number:     12,
				Files: []github.FileDelta{
					{Filename: "login.go", Status: "modified", Additions: 5, Deletions: 1, Patch: "@@ login"},
				},
				Summary: &github.ChangeSummary{TotalFiles: 1, Additions: 5, Deletions: 1},
			},
		}
		gc := Build(sampleTicket(), selection)
		out := gc.Render(0)

		assert.Contains(t, out, "DETAILED FILE CHANGES (acme/web)")
		assert.Contains(t, out, "```diff\n@@ login\n```")
		assert.Contains(t, out, "CODE CHANGES SUMMARY: 1 files, +5 -1 lines")
	})

	t.Run("tight budget drops diff text but keeps ticket fields", func(t *testing.T) {
		selection := correlate.SelectionResult{
			"acme/web": {
				Repository: "acme/web",
				Number:     12,
				Files: []github.FileDelta{
					{Filename: "big.go", Patch: strings.Repeat("x", 5000)},
				},
			},
		}
		gc := Build(sampleTicket(), selection)

		unbounded := gc.Render(0)
		budget := len(unbounded) - 4000
		out := gc.Render(budget)

		assert.LessOrEqual(t, len(out), budget+len("\n"+correlate.TruncationMarker))
		assert.Contains(t, out, "TICKET: QA-1")
		assert.Contains(t, out, "Given valid credentials")
		assert.Contains(t, out, correlate.TruncationMarker)
	})

	t.Run("developer notes are rendered", func(t *testing.T) {
		selection := correlate.SelectionResult{
			"acme/web": {
				Repository: "acme/web",
				Number:     12,
				Body:       "## How to test\n\nrun the smoke suite",
			},
		}
		gc := Build(sampleTicket(), selection)
		out := gc.Render(0)

		assert.Contains(t, out, "Developer testing notes:\nrun the smoke suite")
	})
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("THE CONTEXT")
	assert.Contains(t, prompt, "THE CONTEXT")
	assert.Contains(t, prompt, "### Test Case N")
	assert.Contains(t, prompt, "Generate ONLY the test cases")
}
