package correlate

import (
	"regexp"
	"strings"
)

// guidanceHeaderRe matches section headers developers use for manual testing
// notes in pull request bodies, e.g. "## Manual Test Instructions" or
// "Testing Notes:".
var guidanceHeaderRe = regexp.MustCompile(`(?i)^\s*(?:#{1,6}\s*|\*\*)?\s*(?:manual\s+)?(?:test(?:ing)?\s+(?:instructions|notes|steps|plan|guidance)|how\s+to\s+test|qa\s+notes)\b`)

// sectionBreakRe matches the start of any other markdown section, which ends
// a guidance block.
var sectionBreakRe = regexp.MustCompile(`^\s*#{1,6}\s+\S`)

// ExtractTestingNotes pulls developer-written manual testing guidance out of
// a pull request body. Each recognized header starts a block that runs until
// the next header or the end of the text; blocks are concatenated in order.
// Header lines themselves are not part of the result, so re-extracting from
// the output finds nothing. Missing headers and malformed markdown yield an
// empty result, never an error.
func ExtractTestingNotes(body string) string {
	if body == "" {
		return ""
	}

	lines := strings.Split(body, "\n")
	var blocks []string
	var current []string
	inBlock := false

	flush := func() {
		if len(current) > 0 {
			if block := strings.TrimSpace(strings.Join(current, "\n")); block != "" {
				blocks = append(blocks, block)
			}
			current = nil
		}
	}

	for _, line := range lines {
		if guidanceHeaderRe.MatchString(line) {
			flush()
			inBlock = true
			continue
		}
		if inBlock && sectionBreakRe.MatchString(line) {
			flush()
			inBlock = false
			continue
		}
		if inBlock {
			current = append(current, line)
		}
	}
	flush()

	return strings.Join(blocks, "\n\n")
}
