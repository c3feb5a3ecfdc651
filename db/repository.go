package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dreamforge/store"
)

// Repository provides typed access to the generations table. It satisfies
// store.Index, so the output store can mirror every written image into
// the history index.
type Repository struct {
	conn *sql.DB
}

// NewRepository creates a Repository over an open connection.
func NewRepository(conn *sql.DB) *Repository {
	return &Repository{conn: conn}
}

// Insert records one persisted generation.
func (r *Repository) Insert(ctx context.Context, rec store.Record) error {
	if r.conn == nil {
		return fmt.Errorf("db: connection is nil")
	}

	query := `
		INSERT INTO generations (
			correlation_id, prompt, negative_prompt, seed,
			width, height, steps, duration_ms,
			backend, image_path, thumbnail_path, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.conn.ExecContext(ctx, query,
		rec.CorrelationID,
		rec.Prompt,
		rec.NegativePrompt,
		rec.Seed,
		rec.Width,
		rec.Height,
		rec.Steps,
		rec.DurationMS,
		rec.Backend,
		rec.ImagePath,
		rec.ThumbnailPath,
		createdAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("db: insert generation: %w", err)
	}
	return nil
}

// QueryRecent returns up to limit generations, newest first.
func (r *Repository) QueryRecent(ctx context.Context, limit int) ([]store.Record, error) {
	if r.conn == nil {
		return nil, fmt.Errorf("db: connection is nil")
	}
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT correlation_id, prompt, negative_prompt, seed,
		       width, height, steps, duration_ms,
		       backend, image_path, thumbnail_path, created_at
		FROM generations
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	rows, err := r.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db: query recent generations: %w", err)
	}
	defer rows.Close()

	var records []store.Record
	for rows.Next() {
		var rec store.Record
		var createdAt string
		if err := rows.Scan(
			&rec.CorrelationID,
			&rec.Prompt,
			&rec.NegativePrompt,
			&rec.Seed,
			&rec.Width,
			&rec.Height,
			&rec.Steps,
			&rec.DurationMS,
			&rec.Backend,
			&rec.ImagePath,
			&rec.ThumbnailPath,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("db: scan generation row: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = ts
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db: iterate generation rows: %w", err)
	}
	return records, nil
}

// Count returns the total number of indexed generations.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	if r.conn == nil {
		return 0, fmt.Errorf("db: connection is nil")
	}

	var count int64
	err := r.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM generations").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db: count generations: %w", err)
	}
	return count, nil
}
