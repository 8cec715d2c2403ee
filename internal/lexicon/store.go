// Package lexicon stores word-to-syllable counts in a local sqlite
// database, so a large pronouncing dictionary is parsed once and reopened
// cheaply afterwards.
package lexicon

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"crosswarped.com/haiku/pkg/syllable"
)

const schema = `
CREATE TABLE IF NOT EXISTS words (
	word TEXT PRIMARY KEY,
	syllables INTEGER NOT NULL CHECK (syllables > 0)
);
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Meta describes how the lexicon was built.
type Meta struct {
	Source  string
	BuiltAt time.Time
	Words   int
}

func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create lexicon dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return nil, err
		}
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *Store) initSchema() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// BulkUpsert writes every word-count pair in one transaction. Counts that
// are not positive are skipped. Rebuilding an existing word replaces its
// stored count.
func (s *Store) BulkUpsert(ctx context.Context, counts map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO words (word, syllables) VALUES (?, ?)
		ON CONFLICT(word) DO UPDATE SET syllables = excluded.syllables
	`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for word, count := range counts {
		if count <= 0 {
			continue
		}
		if _, err := stmt.ExecContext(ctx, word, count); err != nil {
			return fmt.Errorf("upsert %q: %w", word, err)
		}
	}

	return tx.Commit()
}

// SetSource records where the lexicon came from and stamps the build time.
func (s *Store) SetSource(ctx context.Context, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := map[string]string{
		"source":   source,
		"built_at": time.Now().UTC().Format(time.RFC3339),
	}
	for key, value := range entries {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO meta (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value); err != nil {
			return fmt.Errorf("set meta %s: %w", key, err)
		}
	}
	return nil
}

// Lookup returns the stored count for a word, or false if the lexicon does
// not have it.
func (s *Store) Lookup(ctx context.Context, word string) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT syllables FROM words WHERE word = ?", word).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup %q: %w", word, err)
	}
	return count, true, nil
}

// All snapshots the whole lexicon into a Static counter. The engine reads
// the snapshot, never the database, so a rebuild cannot shift counts under
// a running search.
func (s *Store) All(ctx context.Context) (syllable.Static, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT word, syllables FROM words")
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	defer rows.Close()

	counts := make(syllable.Static)
	for rows.Next() {
		var word string
		var count int
		if err := rows.Scan(&word, &count); err != nil {
			return nil, fmt.Errorf("scan lexicon row: %w", err)
		}
		counts[word] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return counts, nil
}

// Meta reports the lexicon's provenance and size.
func (s *Store) Meta(ctx context.Context) (Meta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var meta Meta

	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM meta")
	if err != nil {
		return Meta{}, fmt.Errorf("read meta: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Meta{}, fmt.Errorf("scan meta row: %w", err)
		}
		switch key {
		case "source":
			meta.Source = value
		case "built_at":
			if builtAt, err := time.Parse(time.RFC3339, value); err == nil {
				meta.BuiltAt = builtAt
			}
		}
	}
	if err := rows.Err(); err != nil {
		return Meta{}, fmt.Errorf("read meta: %w", err)
	}

	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM words").Scan(&meta.Words); err != nil {
		return Meta{}, fmt.Errorf("count words: %w", err)
	}

	return meta, nil
}
