package jira

import "strings"

// ExtractText pulls plain text out of a Jira field value. Fields may hold a
// plain string or an Atlassian Document Format tree.
func ExtractText(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]interface{}:
		text := extractADF(v)
		// Collapse the blank runs left behind by paragraph breaks.
		lines := strings.Split(text, "\n")
		var kept []string
		for _, line := range lines {
			if s := strings.TrimSpace(line); s != "" {
				kept = append(kept, s)
			}
		}
		return strings.Join(kept, "\n")
	default:
		return ""
	}
}

func extractADF(node map[string]interface{}) string {
	var sb strings.Builder

	if text, ok := node["text"].(string); ok {
		sb.WriteString(text)
	}

	if content, ok := node["content"].([]interface{}); ok {
		for _, child := range content {
			if childMap, ok := child.(map[string]interface{}); ok {
				sb.WriteString(extractADF(childMap))
				if childMap["type"] == "paragraph" || childMap["type"] == "heading" {
					sb.WriteString("\n")
				}
			}
		}
	}

	return sb.String()
}

// MarkdownToADF converts markdown-ish generated text into an ADF document.
// It understands headings, bullet lists, fenced code blocks, bold-only lines
// and horizontal rules; anything else becomes a paragraph.
func MarkdownToADF(content string) map[string]interface{} {
	var blocks []map[string]interface{}
	lines := strings.Split(content, "\n")

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		switch {
		case line == "":
			continue

		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, adfHeading(3, line[4:]))
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, adfHeading(2, line[3:]))
		case strings.HasPrefix(line, "# "):
			blocks = append(blocks, adfHeading(1, line[2:]))

		case strings.HasPrefix(line, "```"):
			var code []string
			for i++; i < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i]), "```"); i++ {
				code = append(code, lines[i])
			}
			if len(code) > 0 {
				blocks = append(blocks, map[string]interface{}{
					"type":    "codeBlock",
					"attrs":   map[string]interface{}{"language": "bash"},
					"content": []map[string]interface{}{adfText(strings.Join(code, "\n"))},
				})
			}

		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			var items []map[string]interface{}
			for ; i < len(lines); i++ {
				item := strings.TrimSpace(lines[i])
				if !strings.HasPrefix(item, "- ") && !strings.HasPrefix(item, "* ") {
					break
				}
				items = append(items, map[string]interface{}{
					"type":    "listItem",
					"content": []map[string]interface{}{adfParagraph(item[2:], nil)},
				})
			}
			i--
			blocks = append(blocks, map[string]interface{}{
				"type":    "bulletList",
				"content": items,
			})

		case strings.HasPrefix(line, "---"):
			blocks = append(blocks, map[string]interface{}{"type": "rule"})

		case strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") && len(line) > 4:
			blocks = append(blocks, adfParagraph(line[2:len(line)-2], []map[string]interface{}{{"type": "strong"}}))

		default:
			blocks = append(blocks, adfParagraph(line, nil))
		}
	}

	if len(blocks) == 0 {
		blocks = append(blocks, adfParagraph(content, nil))
	}

	return map[string]interface{}{
		"type":    "doc",
		"version": 1,
		"content": blocks,
	}
}

func adfText(text string) map[string]interface{} {
	return map[string]interface{}{"type": "text", "text": text}
}

func adfHeading(level int, text string) map[string]interface{} {
	return map[string]interface{}{
		"type":    "heading",
		"attrs":   map[string]interface{}{"level": level},
		"content": []map[string]interface{}{adfText(text)},
	}
}

func adfParagraph(text string, marks []map[string]interface{}) map[string]interface{} {
	node := adfText(text)
	if len(marks) > 0 {
		node["marks"] = marks
	}
	return map[string]interface{}{
		"type":    "paragraph",
		"content": []map[string]interface{}{node},
	}
}
