package generate

import "fmt"

// promptTemplate is the fixed instruction sent with every assembled context.
const promptTemplate = `You are a QA expert generating test cases for a software development ticket, to be executed manually in a QA environment.

Based on the following context, generate detailed, specific test cases that cover:
1. Implementation verification based on the actual code changes
2. Acceptance criteria validation
3. Developer-provided testing guidance from pull request descriptions
4. Regression testing for existing functionality
5. Edge cases and error scenarios

Context:
%s

Requirements:
- Always incorporate developer testing guidance when it is present in the context
- Convert developer-provided steps into actionable QA test cases with exact commands
- Reference specific files, classes or endpoints from the code changes where possible
- Include both positive and negative scenarios
- Keep every step executable by a QA engineer without access to the source code
- Keep frontend and backend test cases separate when both are affected

Format each test case as:

### Test Case N - <short title>

**Steps:**

1. <step>

**Expected:**

* <expected outcome>

IMPORTANT: Generate ONLY the test cases, without introductory text or a concluding summary. Start directly with the first test case heading and end with the last test case.`

// BuildPrompt combines the instruction template with a rendered context.
func BuildPrompt(renderedContext string) string {
	return fmt.Sprintf(promptTemplate, renderedContext)
}
