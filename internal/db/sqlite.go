package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store and applies migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ticket_key TEXT NOT NULL,
		status TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		repositories TEXT NOT NULL DEFAULT '',
		test_cases TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(query)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveResult records one ticket outcome.
func (s *SQLiteStore) SaveResult(res Result) error {
	query := `INSERT INTO results (ticket_key, status, reason, repositories, test_cases, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.Exec(query, res.TicketKey, res.Status, res.Reason, res.Repositories, res.TestCases, time.Now())
	return err
}

// History retrieves the most recent results.
func (s *SQLiteStore) History(limit int) ([]Result, error) {
	query := `SELECT id, ticket_key, status, reason, repositories, test_cases, created_at FROM results ORDER BY id DESC LIMIT ?`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ID, &r.TicketKey, &r.Status, &r.Reason, &r.Repositories, &r.TestCases, &r.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// LatestTestCases returns the most recently generated test cases for a
// ticket, or "" when none are recorded.
func (s *SQLiteStore) LatestTestCases(ticketKey string) (string, error) {
	query := `SELECT test_cases FROM results WHERE ticket_key = ? AND test_cases != '' ORDER BY id DESC LIMIT 1`
	var cases string
	err := s.db.QueryRow(query, ticketKey).Scan(&cases)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return cases, err
}
