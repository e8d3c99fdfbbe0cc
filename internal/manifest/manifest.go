// Package manifest records resolved paths in a SQLite database so
// pipeline tooling can audit what the naming schema produced.
package manifest

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store is an append-only log of built paths.
type Store struct {
	db         *sql.DB
	stmtRecord *sql.Stmt
}

// Entry is one recorded path resolution.
type Entry struct {
	Key       string
	Path      string
	Tokens    map[string]any
	CreatedAt time.Time
}

// Open opens (creating if needed) the manifest database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open manifest %s: %w", path, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	ddl := `
	CREATE TABLE IF NOT EXISTS paths (
		id INTEGER PRIMARY KEY,
		key TEXT NOT NULL,
		path TEXT NOT NULL,
		tokens JSON NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_paths_key ON paths(key);
	`
	if _, err := db.Exec(ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create manifest schema: %w", err)
	}

	stmt, err := db.Prepare(`INSERT INTO paths (key, path, tokens, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prepare manifest insert: %w", err)
	}

	return &Store{db: db, stmtRecord: stmt}, nil
}

// Record appends one resolution to the manifest.
func (s *Store) Record(key, path string, tokens map[string]any) error {
	blob, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}
	if _, err := s.stmtRecord.Exec(key, path, string(blob), time.Now().Unix()); err != nil {
		return fmt.Errorf("record path %s: %w", path, err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT key, path, tokens, created_at FROM paths ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query manifest: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var blob string
		var created int64
		if err := rows.Scan(&e.Key, &e.Path, &blob, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(blob), &e.Tokens); err != nil {
			return nil, fmt.Errorf("decode tokens for %s: %w", e.Path, err)
		}
		e.CreatedAt = time.Unix(created, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the prepared statement and database handle.
func (s *Store) Close() error {
	_ = s.stmtRecord.Close()
	return s.db.Close()
}
