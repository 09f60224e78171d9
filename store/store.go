// Package store persists build output to a SQLite database: the schedules
// (traversal) table, the generated line features, and a record per build
// run. The schedules table is written with symbolic edge columns first and
// backfilled with line identifiers once geometry generation has assigned
// them.
package store

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a SQLite connection holding netbuild output.
type DB struct {
	conn *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("store: opening sqlite: %w", err)
	}

	// SQLite allows a single writer; the build is a sequential batch, so
	// one connection is all we need.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: applying pragma: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: applying schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn exposes the underlying connection for ad-hoc queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}
