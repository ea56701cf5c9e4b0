package db

import "fmt"

// StoreConfig selects and configures a history backend.
type StoreConfig struct {
	// Type is "sqlite" or "postgres". Empty defaults to sqlite.
	Type string
	// ConnectionString is the SQLite path or PostgreSQL DSN. Empty defaults
	// to ".qadraft.db" for sqlite.
	ConnectionString string
}

// NewStore creates a history store from configuration.
func NewStore(cfg StoreConfig) (Store, error) {
	switch cfg.Type {
	case "", "sqlite":
		path := cfg.ConnectionString
		if path == "" {
			path = ".qadraft.db"
		}
		return NewSQLiteStore(path)
	case "postgres":
		if cfg.ConnectionString == "" {
			return nil, fmt.Errorf("postgres store requires a connection string")
		}
		return NewPostgresStore(cfg.ConnectionString)
	default:
		return nil, fmt.Errorf("unknown store type: %q", cfg.Type)
	}
}
