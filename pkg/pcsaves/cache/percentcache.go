package cache

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// PercentCache memoizes a percent run's rendered output keyed by Key,
// adapted from mage-x's sqlite-backed build cache: the same
// geometry/build/leftover/wanted-save combination over an unchanged path
// file should not re-run the whole reader/evaluator pipeline.
type PercentCache struct {
	db *sql.DB
}

// OpenPercentCache opens (creating if necessary) a sqlite database at path
// and ensures its schema exists.
func OpenPercentCache(path string) (*PercentCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS percent_results (
			cache_key   TEXT NOT NULL,
			wanted_hash TEXT NOT NULL,
			output      TEXT NOT NULL,
			PRIMARY KEY (cache_key, wanted_hash)
		)
	`); err != nil {
		db.Close()
		return nil, err
	}
	return &PercentCache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *PercentCache) Close() error {
	return c.db.Close()
}

// Get returns a cached rendered percent output for key and wantedHash (a
// hash of the wanted-save expressions and labels, since the same Key can be
// queried with different wanted saves).
func (c *PercentCache) Get(key Key, wantedHash string) (string, bool, error) {
	row := c.db.QueryRow(
		`SELECT output FROM percent_results WHERE cache_key = ? AND wanted_hash = ?`,
		key.String(), wantedHash,
	)
	var output string
	if err := row.Scan(&output); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return output, true, nil
}

// Put stores output for key and wantedHash, replacing any prior entry for
// that same pair.
func (c *PercentCache) Put(key Key, wantedHash, output string) error {
	_, err := c.db.Exec(
		`INSERT INTO percent_results (cache_key, wanted_hash, output) VALUES (?, ?, ?)
		 ON CONFLICT(cache_key, wanted_hash) DO UPDATE SET output = excluded.output`,
		key.String(), wantedHash, output,
	)
	if err != nil {
		return fmt.Errorf("writing percent cache entry: %w", err)
	}
	return nil
}
