// Package cache persists parsed alignment records in a local SQLite
// database so repeated runs over large facesets skip manifest re-parsing.
// Entries are keyed by file path and invalidated by modification time.
package cache

import (
	"database/sql"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

// Cache is a SQLite-backed store of alignment records.
type Cache struct {
	db   *sql.DB
	path string
}

// Open creates or opens a record cache at the given path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	c := &Cache{db: db, path: path}
	if err := c.init(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) init() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := c.db.Exec(p); err != nil {
			return fmt.Errorf("pragma failed: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS alignments (
			path   TEXT PRIMARY KEY,
			mtime  INTEGER NOT NULL,
			record BLOB NOT NULL
		);
	`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	return nil
}

// Get loads a cached record into dst. It reports false when the path is
// unknown or the file has changed since the record was stored.
func (c *Cache) Get(path string, mtime int64, dst any) (bool, error) {
	var storedMtime int64
	var blob []byte
	err := c.db.QueryRow(
		"SELECT mtime, record FROM alignments WHERE path = ?", path,
	).Scan(&storedMtime, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache lookup failed: %w", err)
	}
	if storedMtime != mtime {
		return false, nil
	}
	if err := json.Unmarshal(blob, dst); err != nil {
		// A corrupt entry behaves like a miss; the caller re-parses.
		return false, nil
	}
	return true, nil
}

// Put stores a record for the given path, replacing any previous entry.
func (c *Cache) Put(path string, mtime int64, record any) error {
	blob, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	_, err = c.db.Exec(
		"INSERT OR REPLACE INTO alignments (path, mtime, record) VALUES (?, ?, ?)",
		path, mtime, blob,
	)
	if err != nil {
		return fmt.Errorf("cache write failed: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
