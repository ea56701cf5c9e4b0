package db

import "time"

// Result is one per-ticket outcome persisted across runs.
type Result struct {
	ID           int64     `json:"id"`
	TicketKey    string    `json:"ticket_key"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason,omitempty"`
	Repositories string    `json:"repositories,omitempty"` // comma-separated
	TestCases    string    `json:"test_cases,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store is the run-history storage backend. It is best-effort: callers log
// store failures and carry on.
type Store interface {
	Close() error
	SaveResult(res Result) error
	History(limit int) ([]Result, error)
	LatestTestCases(ticketKey string) (string, error)
}
