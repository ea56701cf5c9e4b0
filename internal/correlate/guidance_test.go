package correlate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTestingNotes(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		assert.Equal(t, "", ExtractTestingNotes(""))
	})

	t.Run("no guidance header", func(t *testing.T) {
		body := "## Summary\n\nAdds the login endpoint.\n\n## Checklist\n- [x] unit tests"
		assert.Equal(t, "", ExtractTestingNotes(body))
	})

	t.Run("single block runs to end of body", func(t *testing.T) {
		body := "## Summary\n\nAdds login.\n\n## Testing Instructions\n\n1. POST /login with valid credentials\n2. expect a 200"
		got := ExtractTestingNotes(body)
		assert.Equal(t, "1. POST /login with valid credentials\n2. expect a 200", got)
	})

	t.Run("block ends at next section", func(t *testing.T) {
		body := "## How to test\n\nrun `make e2e`\n\n## Rollback\n\nrevert the migration"
		got := ExtractTestingNotes(body)
		assert.Equal(t, "run `make e2e`", got)
		assert.NotContains(t, got, "Rollback")
	})

	t.Run("multiple blocks are concatenated in order", func(t *testing.T) {
		body := "### QA Notes\n\ncheck the admin panel\n\n### Deployment\n\nnothing special\n\n### Manual Test Steps\n\nlog in as a guest"
		got := ExtractTestingNotes(body)
		assert.Equal(t, "check the admin panel\n\nlog in as a guest", got)
	})

	t.Run("header without markdown prefix", func(t *testing.T) {
		body := "Testing notes:\nrestart the worker first"
		assert.Equal(t, "restart the worker first", ExtractTestingNotes(body))
	})

	t.Run("bold header", func(t *testing.T) {
		body := "**How to test**\nopen the settings page"
		assert.Equal(t, "open the settings page", ExtractTestingNotes(body))
	})

	t.Run("re-extraction finds nothing", func(t *testing.T) {
		body := "## Testing Instructions\n\n1. run the migration\n2. verify the schema"
		first := ExtractTestingNotes(body)
		assert.NotEmpty(t, first)
		assert.Equal(t, "", ExtractTestingNotes(first))
	})

	t.Run("header with no content", func(t *testing.T) {
		body := "## Testing Instructions\n\n## Next Section\ntext"
		assert.Equal(t, "", ExtractTestingNotes(body))
	})
}
