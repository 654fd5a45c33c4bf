// Package store persists finished evaluations in a local SQLite database so
// past runs can be fetched back by ID.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no evaluation exists for the requested ID.
var ErrNotFound = errors.New("evaluation not found")

// Record is one persisted pipeline run. Result holds the full result JSON as
// returned to the caller; the score and verdict are denormalized for listing.
type Record struct {
	ID        string
	CreatedAt time.Time
	FitScore  int
	IsFit     bool
	Result    []byte
}

// SQLiteStore keeps evaluation history in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database at dbPath and ensures the
// evaluations table exists.
func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS evaluations (
		id         TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		fit_score  INTEGER NOT NULL,
		is_fit     INTEGER NOT NULL,
		result     TEXT NOT NULL
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating evaluations table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save records a finished evaluation. CreatedAt defaults to now when unset.
func (s *SQLiteStore) Save(ctx context.Context, rec *Record) error {
	if rec == nil || rec.ID == "" {
		return errors.New("record with an id is required")
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO evaluations (id, created_at, fit_score, is_fit, result) VALUES (?, ?, ?, ?, ?)",
		rec.ID, createdAt, rec.FitScore, rec.IsFit, string(rec.Result),
	)
	if err != nil {
		return fmt.Errorf("saving evaluation %s: %w", rec.ID, err)
	}

	return nil
}

// Get fetches a single evaluation by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Record, error) {
	var (
		rec    Record
		isFit  int
		result string
	)

	row := s.db.QueryRowContext(ctx,
		"SELECT id, created_at, fit_score, is_fit, result FROM evaluations WHERE id = ?", id)
	err := row.Scan(&rec.ID, &rec.CreatedAt, &rec.FitScore, &isFit, &result)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching evaluation %s: %w", id, err)
	}

	rec.IsFit = isFit != 0
	rec.Result = []byte(result)

	return &rec, nil
}

// Recent lists the newest evaluations, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, created_at, fit_score, is_fit, result FROM evaluations ORDER BY created_at DESC, id LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("listing evaluations: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var (
			rec    Record
			isFit  int
			result string
		)
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.FitScore, &isFit, &result); err != nil {
			return nil, fmt.Errorf("scanning evaluation row: %w", err)
		}
		rec.IsFit = isFit != 0
		rec.Result = []byte(result)
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating evaluations: %w", err)
	}

	return records, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
