// Package export persists the per-ticket results of a run to a local JSON
// artifact. The file is overwritten at run start and grows by one record per
// processed ticket, success or failure, so it always reflects what was
// attempted.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"qadraft/internal/github"
	"qadraft/internal/jira"
)

// Ticket outcome values recorded in the export.
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusFailed  = "failed"
	StatusPreview = "preview"
)

// Record is one processed ticket: its fields, the selected changes and
// either the generated test cases or the failure reason.
type Record struct {
	Ticket          jira.Ticket                   `json:"ticket"`
	Changes         map[string]github.PullRequest `json:"changes,omitempty"`
	TestingNotes    map[string]string             `json:"testing_notes,omitempty"`
	RenderedContext string                        `json:"rendered_context,omitempty"`
	TestCases       string                        `json:"test_cases,omitempty"`
	Status          string                        `json:"status"`
	FailureReason   string                        `json:"failure_reason,omitempty"`
	Warnings        []string                      `json:"warnings,omitempty"`
	UpdatedInJira   bool                          `json:"updated_in_jira"`
	ProcessedAt     time.Time                     `json:"processed_at"`
}

// Writer appends records to the export file, rewriting the whole artifact
// after each append so a crash loses at most the in-flight ticket.
type Writer struct {
	path    string
	records []Record
}

// NewWriter creates the export file, truncating any previous run's artifact.
func NewWriter(path string) (*Writer, error) {
	w := &Writer{path: path}
	if err := w.flush(); err != nil {
		return nil, fmt.Errorf("failed to create export file: %w", err)
	}
	return w, nil
}

// Append records one processed ticket and rewrites the artifact.
func (w *Writer) Append(rec Record) error {
	w.records = append(w.records, rec)
	return w.flush()
}

// Records returns everything written so far, in processing order.
func (w *Writer) Records() []Record {
	return w.records
}

// Path returns the export file location.
func (w *Writer) Path() string {
	return w.path
}

func (w *Writer) flush() error {
	records := w.records
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export records: %w", err)
	}
	if err := os.WriteFile(w.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
