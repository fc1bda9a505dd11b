// Package sqlite provides SQLite-based storage for captured pages and comments.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// schemaVersion is stored in PRAGMA user_version once the schema exists.
const schemaVersion = 1

// DB is a SQLite database holding pages and their comments.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for path. Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects, applies connection pragmas and creates the schema.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, pragma := range db.pragmas() {
		if _, err := conn.Exec("PRAGMA " + pragma); err != nil {
			conn.Close()
			return fmt.Errorf("failed to set %s: %w", pragma, err)
		}
	}

	db.db = conn
	if err := db.migrate(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (db *DB) pragmas() []string {
	pragmas := []string{"busy_timeout = 5000", "foreign_keys = ON"}
	// WAL is unavailable for in-memory databases.
	if db.path != ":memory:" {
		pragmas = append(pragmas, "journal_mode = WAL")
	}
	return pragmas
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// migrate creates the tables on a fresh database. Databases already at
// schemaVersion are left alone.
func (db *DB) migrate() error {
	var version int
	if err := db.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	if version >= schemaVersion {
		return nil
	}

	if _, err := db.db.Exec(schema); err != nil {
		return err
	}
	_, err := db.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS pages (
	id TEXT PRIMARY KEY,
	url TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	favicon TEXT NOT NULL DEFAULT '',
	keywords TEXT NOT NULL DEFAULT '[]',
	content TEXT NOT NULL DEFAULT '',
	markdown TEXT NOT NULL DEFAULT '',
	content_hash TEXT NOT NULL DEFAULT '',
	strategy TEXT NOT NULL DEFAULT '',
	passage TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS comments (
	id TEXT PRIMARY KEY,
	page_id TEXT NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
	author TEXT NOT NULL DEFAULT '',
	text TEXT NOT NULL,
	likes INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pages_updated_at ON pages(updated_at);
CREATE INDEX IF NOT EXISTS idx_comments_page_id ON comments(page_id);
`
