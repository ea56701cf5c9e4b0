package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIClient_Send(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth := r.Header.Get("Authorization"); auth != "Bearer key" {
				t.Errorf("unexpected authorization header: %q", auth)
			}

			var payload openAIRequest
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
			if payload.MaxCompletionTokens != 4000 {
				t.Errorf("expected max_completion_tokens 4000, got %d", payload.MaxCompletionTokens)
			}
			if len(payload.Messages) != 1 || payload.Messages[0].Content != "prompt" {
				t.Errorf("unexpected messages: %+v", payload.Messages)
			}

			json.NewEncoder(w).Encode(map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]interface{}{"role": "assistant", "content": "### Test Case 1"}},
				},
			})
		}))
		defer server.Close()

		client := NewOpenAIClient("key", "gpt-test")
		client.apiURL = server.URL

		out, err := client.Send(context.Background(), "prompt")
		if err != nil {
			t.Fatalf("Send() returned an unexpected error: %v", err)
		}
		if out != "### Test Case 1" {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("missing api key", func(t *testing.T) {
		client := NewOpenAIClient("", "gpt-test")
		if _, err := client.Send(context.Background(), "prompt"); err == nil {
			t.Error("Send() expected an error but got none")
		}
	})

	t.Run("api error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := NewOpenAIClient("key", "gpt-test")
		client.apiURL = server.URL

		if _, err := client.Send(context.Background(), "prompt"); err == nil {
			t.Error("Send() expected an error but got none")
		}
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
		}))
		defer server.Close()

		client := NewOpenAIClient("key", "gpt-test")
		client.apiURL = server.URL

		if _, err := client.Send(context.Background(), "prompt"); err == nil {
			t.Error("Send() expected an error for empty choices")
		}
	})

	t.Run("blank content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]interface{}{"role": "assistant", "content": "   "}},
				},
			})
		}))
		defer server.Close()

		client := NewOpenAIClient("key", "gpt-test")
		client.apiURL = server.URL

		if _, err := client.Send(context.Background(), "prompt"); err == nil {
			t.Error("Send() expected an error for blank content")
		}
	})
}
