package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendEnvSecrets(t *testing.T) {
	t.Run("creates the file with the secrets", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")

		err := appendEnvSecrets(path, map[string]string{"JIRA_API_TOKEN": "abc"})
		if err != nil {
			t.Fatalf("appendEnvSecrets() returned an unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read .env: %v", err)
		}
		if !strings.Contains(string(data), "JIRA_API_TOKEN=abc") {
			t.Errorf("expected secret in file, got: %q", string(data))
		}
	})

	t.Run("skips existing keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("JIRA_API_TOKEN=old\n"), 0600); err != nil {
			t.Fatal(err)
		}

		err := appendEnvSecrets(path, map[string]string{
			"JIRA_API_TOKEN": "new",
			"GITHUB_TOKEN":   "gh",
		})
		if err != nil {
			t.Fatalf("appendEnvSecrets() returned an unexpected error: %v", err)
		}

		data, _ := os.ReadFile(path)
		content := string(data)
		if strings.Contains(content, "JIRA_API_TOKEN=new") {
			t.Error("existing key should not be overwritten")
		}
		if !strings.Contains(content, "GITHUB_TOKEN=gh") {
			t.Errorf("new key missing: %q", content)
		}
	})

	t.Run("adds a newline before appending when needed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("EXISTING=1"), 0600); err != nil {
			t.Fatal(err)
		}

		if err := appendEnvSecrets(path, map[string]string{"GITHUB_TOKEN": "gh"}); err != nil {
			t.Fatalf("appendEnvSecrets() returned an unexpected error: %v", err)
		}

		data, _ := os.ReadFile(path)
		if !strings.Contains(string(data), "EXISTING=1\nGITHUB_TOKEN=gh") {
			t.Errorf("expected newline separation, got: %q", string(data))
		}
	})

	t.Run("no secrets is a no-op", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		if err := appendEnvSecrets(path, nil); err != nil {
			t.Fatalf("appendEnvSecrets() returned an unexpected error: %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("no file should be created for empty secrets")
		}
	})
}
