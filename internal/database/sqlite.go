package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Database wraps a read-only SQLite handle and provides database operations.
// The analyzer treats both the listings database and the historical
// neighborhood-analysis database as simple read sources.
type Database struct {
	DB *sql.DB
}

// Open opens the SQLite file at path in read-only mode and verifies the
// connection. The file must already exist; the analyzer never creates or
// mutates its sources.
func Open(ctx context.Context, path string) (*Database, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database file %s: %w", path, err)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// One reader is all a sequential pipeline needs.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", path, err)
	}

	return &Database{DB: db}, nil
}

// OpenInMemory opens a fresh writable in-memory database. Used by tests to
// seed fixture rows.
func OpenInMemory(ctx context.Context) (*Database, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping in-memory database: %w", err)
	}
	return &Database{DB: db}, nil
}

// Ping checks if the database connection is alive.
func (db *Database) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}

// Close releases the underlying handle.
func (db *Database) Close() {
	if db.DB != nil {
		_ = db.DB.Close()
	}
}
