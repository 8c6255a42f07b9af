// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package judgments persists graded relevance judgments in SQLite and
// serves them to the evaluation stage.
// Implements: prd012-relevance (R4.1-R4.5);
//
//	docs/ARCHITECTURE § Judgment Store.
package judgments

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/rank-eval/pkg/types"
)

// Store manages the judgments SQLite database. One row per
// (record, query, rater) triple; a rater re-judging a record replaces the
// earlier row (R4.2).
type Store struct {
	db *sql.DB
}

// Open opens or creates the judgments database at path, creating parent
// directories and the schema as needed (R4.1).
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating judgments directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening judgments database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS judgments (
		rowid INTEGER PRIMARY KEY AUTOINCREMENT,
		record_id TEXT NOT NULL,
		query TEXT NOT NULL,
		rater_id TEXT NOT NULL,
		score REAL NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		UNIQUE(record_id, query, rater_id)
	)`)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_judgments_query ON judgments(query)`)
	return err
}

// Save upserts one judgment. An empty record ID or rater ID is rejected;
// scores outside [0, 1] are rejected rather than clamped (R4.2, R4.3).
func (s *Store) Save(ctx context.Context, j types.Judgment) error {
	if j.RecordID == "" {
		return fmt.Errorf("judgment has no record ID")
	}
	if j.RaterID == "" {
		return fmt.Errorf("judgment has no rater ID")
	}
	if j.Score < 0 || j.Score > 1 {
		return fmt.Errorf("judgment score %f outside [0, 1]", j.Score)
	}

	createdAt := j.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO judgments
		(record_id, query, rater_id, score, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(record_id, query, rater_id) DO UPDATE SET
			score = excluded.score,
			note = excluded.note,
			created_at = excluded.created_at`,
		j.RecordID, j.Query, j.RaterID, j.Score, j.Note, createdAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving judgment for %s: %w", j.RecordID, err)
	}
	return nil
}

// ForQuery returns every judgment recorded for the query, ordered by
// record then rater for stable output (R4.4).
func (s *Store) ForQuery(ctx context.Context, query string) ([]types.Judgment, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT record_id, query, rater_id, score, note, created_at
		FROM judgments WHERE query = ? ORDER BY record_id, rater_id`, query)
	if err != nil {
		return nil, fmt.Errorf("querying judgments: %w", err)
	}
	defer rows.Close()
	return scanJudgments(rows)
}

// All returns every judgment in the store, ordered by query, record, rater.
func (s *Store) All(ctx context.Context) ([]types.Judgment, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT record_id, query, rater_id, score, note, created_at
		FROM judgments ORDER BY query, record_id, rater_id`)
	if err != nil {
		return nil, fmt.Errorf("querying judgments: %w", err)
	}
	defer rows.Close()
	return scanJudgments(rows)
}

func scanJudgments(rows *sql.Rows) ([]types.Judgment, error) {
	var out []types.Judgment
	for rows.Next() {
		var j types.Judgment
		var createdAt string
		if err := rows.Scan(&j.RecordID, &j.Query, &j.RaterID, &j.Score, &j.Note, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning judgment: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			j.CreatedAt = t
		}
		out = append(out, j)
	}
	return out, rows.Err()
}
