// Package cache remembers documents which are already formatted so batch
// runs can skip them.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const schema = `
CREATE TABLE IF NOT EXISTS formatted (
	path   TEXT PRIMARY KEY,
	digest TEXT NOT NULL,
	rules  TEXT NOT NULL,
	stamp  INTEGER NOT NULL
);
`

// Cache is safe for concurrent use. Nil *Cache is valid and never reports
// anything as fresh.
type Cache struct {
	mu   sync.Mutex
	conn *sqlite.Conn
	log  *zap.Logger
}

// Open opens (creating if necessary) cache database. Empty path means no
// cache and returns nil.
func Open(path string, log *zap.Logger) (*Cache, error) {
	if len(path) == 0 {
		return nil, nil
	}
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("prepare cache %s: %w", path, err)
	}
	log.Debug("Cache opened", zap.String("path", path))
	return &Cache{conn: conn, log: log}, nil
}

// Digest returns fingerprint of document content.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Fresh reports whether document at path with content digest was produced
// by formatting with the same rules.
func (c *Cache) Fresh(path, digest, rules string) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	found := false
	err := sqlitex.Execute(c.conn, `SELECT stamp FROM formatted WHERE path = ? AND digest = ? AND rules = ?`,
		&sqlitex.ExecOptions{
			Args: []any{path, digest, rules},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				found = true
				c.log.Debug("Cache hit", zap.String("path", path), zap.Time("formatted", time.Unix(stmt.ColumnInt64(0), 0)))
				return nil
			},
		})
	if err != nil {
		return false, fmt.Errorf("query cache for %s: %w", path, err)
	}
	return found, nil
}

// Record stores digest of formatted document.
func (c *Cache) Record(path, digest, rules string) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	err := sqlitex.Execute(c.conn, `INSERT INTO formatted (path, digest, rules, stamp) VALUES (?, ?, ?, ?)
ON CONFLICT (path) DO UPDATE SET digest = excluded.digest, rules = excluded.rules, stamp = excluded.stamp`,
		&sqlitex.ExecOptions{
			Args: []any{path, digest, rules, time.Now().Unix()},
		})
	if err != nil {
		return fmt.Errorf("update cache for %s: %w", path, err)
	}
	return nil
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}
