package lemma

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// CacheDB is the SQLite-backed cache store, for decks large enough that
// rewriting one JSON blob per run starts to hurt.
type CacheDB struct {
	db *sql.DB
}

// OpenCacheDB opens (or creates) the SQLite database at path and ensures
// the lemma_cache table exists.
func OpenCacheDB(path string) (*CacheDB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open lemma cache db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS lemma_cache (
		token      TEXT PRIMARY KEY,
		lemma      TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create lemma_cache table: %w", err)
	}
	return &CacheDB{db: db}, nil
}

func (c *CacheDB) Load() (map[string]string, error) {
	rows, err := c.db.Query(`SELECT token, lemma FROM lemma_cache`)
	if err != nil {
		return nil, fmt.Errorf("load lemma cache: %w", err)
	}
	defer rows.Close()

	entries := map[string]string{}
	for rows.Next() {
		var token, lemma string
		if err := rows.Scan(&token, &lemma); err != nil {
			return nil, fmt.Errorf("scan lemma row: %w", err)
		}
		entries[token] = lemma
	}
	return entries, rows.Err()
}

func (c *CacheDB) Save(entries map[string]string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin cache save: %w", err)
	}
	now := time.Now().Unix()
	const q = `INSERT INTO lemma_cache (token, lemma, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(token) DO UPDATE SET lemma = excluded.lemma, updated_at = excluded.updated_at`
	for token, lemma := range entries {
		if _, err := tx.Exec(q, token, lemma, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("save lemma %q: %w", token, err)
		}
	}
	return tx.Commit()
}

func (c *CacheDB) Close() error {
	return c.db.Close()
}
