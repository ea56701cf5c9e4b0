package jira

import "testing"

func TestExtractText(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if got := ExtractText(nil); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("plain string", func(t *testing.T) {
		if got := ExtractText("hello"); got != "hello" {
			t.Errorf("expected hello, got %q", got)
		}
	})

	t.Run("adf document", func(t *testing.T) {
		doc := map[string]interface{}{
			"type":    "doc",
			"version": 1,
			"content": []interface{}{
				map[string]interface{}{
					"type": "heading",
					"content": []interface{}{
						map[string]interface{}{"type": "text", "text": "Criteria"},
					},
				},
				map[string]interface{}{
					"type": "paragraph",
					"content": []interface{}{
						map[string]interface{}{"type": "text", "text": "Given a user"},
					},
				},
				map[string]interface{}{
					"type": "paragraph",
					"content": []interface{}{
						map[string]interface{}{"type": "text", "text": "Then they log in"},
					},
				},
			},
		}
		want := "Criteria\nGiven a user\nThen they log in"
		if got := ExtractText(doc); got != want {
			t.Errorf("ExtractText() = %q, want %q", got, want)
		}
	})

	t.Run("unsupported type", func(t *testing.T) {
		if got := ExtractText(42); got != "" {
			t.Errorf("expected empty string for number, got %q", got)
		}
	})
}

func TestMarkdownToADF(t *testing.T) {
	t.Run("headings lists and code", func(t *testing.T) {
		md := "### Test Case 1 - Login\n\n**Steps:**\n\n- open the page\n- submit the form\n\n```\ncurl -X POST /login\n```\n\n---\n\nDone"
		doc := MarkdownToADF(md)

		if doc["type"] != "doc" {
			t.Fatalf("expected doc, got %v", doc["type"])
		}
		blocks := doc["content"].([]map[string]interface{})

		wantTypes := []string{"heading", "paragraph", "bulletList", "codeBlock", "rule", "paragraph"}
		if len(blocks) != len(wantTypes) {
			t.Fatalf("expected %d blocks, got %d: %v", len(wantTypes), len(blocks), blocks)
		}
		for i, wt := range wantTypes {
			if blocks[i]["type"] != wt {
				t.Errorf("block %d: expected %s, got %v", i, wt, blocks[i]["type"])
			}
		}

		list := blocks[2]["content"].([]map[string]interface{})
		if len(list) != 2 {
			t.Errorf("expected 2 list items, got %d", len(list))
		}
	})

	t.Run("bold line becomes strong paragraph", func(t *testing.T) {
		doc := MarkdownToADF("**Expected:**")
		blocks := doc["content"].([]map[string]interface{})
		if len(blocks) != 1 || blocks[0]["type"] != "paragraph" {
			t.Fatalf("unexpected blocks: %v", blocks)
		}
		text := blocks[0]["content"].([]map[string]interface{})[0]
		if _, ok := text["marks"]; !ok {
			t.Error("expected strong mark on bold-only line")
		}
	})

	t.Run("empty input still produces a document", func(t *testing.T) {
		doc := MarkdownToADF("")
		blocks := doc["content"].([]map[string]interface{})
		if len(blocks) != 1 {
			t.Fatalf("expected fallback paragraph, got %v", blocks)
		}
	})
}
