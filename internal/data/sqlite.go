package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redditor-labs/redditor/internal/biz/repo"

	_ "modernc.org/sqlite"
)

// sqliteStore implements StoreRepo on SQLite for single-node deployments
// that have no Redis available
type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed store
func NewSQLiteStore(dbPath string) (repo.StoreRepo, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Concurrent invocations share one connection to keep per-key
	// operations serialized the way Redis would
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS ordered_sets (
			key TEXT NOT NULL,
			score REAL NOT NULL,
			member TEXT NOT NULL,
			PRIMARY KEY (key, member)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create ordered_sets table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_ordered_sets_key_score ON ordered_sets(key, score)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS counters (
			name TEXT PRIMARY KEY,
			value INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create counters table: %w", err)
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) IncrementCounter(ctx context.Context, name string, by int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO counters (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = value + excluded.value
	`, name, by)
	if err != nil {
		return fmt.Errorf("increment %s: %w: %v", name, repo.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *sqliteStore) Counter(ctx context.Context, name string) (int64, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM counters WHERE name = ?`, name)

	var value int64
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read counter %s: %w: %v", name, repo.ErrStorageUnavailable, err)
	}
	return value, nil
}

func (s *sqliteStore) OrderedInsert(ctx context.Context, key string, score float64, member string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO ordered_sets (key, score, member) VALUES (?, ?, ?)
	`, key, score, member)
	if err != nil {
		return fmt.Errorf("insert into %s: %w: %v", key, repo.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *sqliteStore) Count(ctx context.Context, key string) (int64, error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ordered_sets WHERE key = ?`, key)

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w: %v", key, repo.ErrStorageUnavailable, err)
	}
	return count, nil
}

func (s *sqliteStore) TrimLowestScored(ctx context.Context, key string, start, stop int64) error {
	if start > stop {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM ordered_sets WHERE rowid IN (
			SELECT rowid FROM ordered_sets
			WHERE key = ?
			ORDER BY score ASC
			LIMIT ? OFFSET ?
		)
	`, key, stop-start+1, start)
	if err != nil {
		return fmt.Errorf("trim %s: %w: %v", key, repo.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *sqliteStore) RangeByScore(ctx context.Context, key string) ([]repo.ScoredMember, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT score, member FROM ordered_sets WHERE key = ? ORDER BY score ASC
	`, key)
	if err != nil {
		return nil, fmt.Errorf("range %s: %w: %v", key, repo.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var members []repo.ScoredMember
	for rows.Next() {
		var m repo.ScoredMember
		if err := rows.Scan(&m.Score, &m.Member); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}
