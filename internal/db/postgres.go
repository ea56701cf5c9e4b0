package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to PostgreSQL and applies migrations.
func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS results (
		id SERIAL PRIMARY KEY,
		ticket_key TEXT NOT NULL,
		status TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		repositories TEXT NOT NULL DEFAULT '',
		test_cases TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ DEFAULT NOW()
	);
	`
	_, err := s.db.Exec(query)
	return err
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SaveResult records one ticket outcome.
func (s *PostgresStore) SaveResult(res Result) error {
	query := `INSERT INTO results (ticket_key, status, reason, repositories, test_cases, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.db.Exec(query, res.TicketKey, res.Status, res.Reason, res.Repositories, res.TestCases, time.Now())
	return err
}

// History retrieves the most recent results.
func (s *PostgresStore) History(limit int) ([]Result, error) {
	query := `SELECT id, ticket_key, status, reason, repositories, test_cases, created_at FROM results ORDER BY id DESC LIMIT $1`
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
func (s *PostgresStore) LatestTestCases(ticketKey string) (string, error) {
	query := `SELECT test_cases FROM results WHERE ticket_key = $1 AND test_cases != '' ORDER BY id DESC LIMIT 1`
	var cases string
	err := s.db.QueryRow(query, ticketKey).Scan(&cases)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return cases, err
}
