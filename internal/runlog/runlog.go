package runlog

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Run records one countdown that reached zero.
type Run struct {
	ID          int64
	Seconds     int
	Format      string
	StartedAt   time.Time
	CompletedAt time.Time
}

func (r Run) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}

type Repository struct {
	db *sql.DB
}

func Open(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	repo := &Repository{db: db}
	if err := repo.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return repo, nil
}

func (r *Repository) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seconds INTEGER NOT NULL,
		format TEXT NOT NULL DEFAULT '',
		started_at TEXT NOT NULL,
		completed_at TEXT NOT NULL
	)
	`
	_, err := r.db.Exec(query)
	return err
}

func (r *Repository) Create(run *Run) error {
	result, err := r.db.Exec(
		"INSERT INTO runs (seconds, format, started_at, completed_at) VALUES (?, ?, ?, ?)",
		run.Seconds,
		run.Format,
		run.StartedAt.Format(time.RFC3339Nano),
		run.CompletedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	run.ID = id
	return nil
}

// Recent returns up to limit runs, newest first.
func (r *Repository) Recent(limit int) ([]Run, error) {
	rows, err := r.db.Query(
		"SELECT id, seconds, format, started_at, completed_at FROM runs ORDER BY completed_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt, completedAt string
		if err := rows.Scan(&run.ID, &run.Seconds, &run.Format, &startedAt, &completedAt); err != nil {
			return nil, err
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		run.CompletedAt, _ = time.Parse(time.RFC3339Nano, completedAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *Repository) Count() (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	return n, err
}

func (r *Repository) Close() error {
	return r.db.Close()
}
