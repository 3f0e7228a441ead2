package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/readtrack"
)

// Compile-time interface verification.
var _ readtrack.ProgressService = (*ProgressService)(nil)

// ProgressService implements readtrack.ProgressService using SQLite.
type ProgressService struct {
	db *DB
}

// NewProgressService creates a new ProgressService.
func NewProgressService(db *DB) *ProgressService {
	return &ProgressService{db: db}
}

// ReportProgress stores the progress for a page, replacing any previous
// value. An empty title keeps the stored one.
func (s *ProgressService) ReportProgress(ctx context.Context, progress *readtrack.Progress) error {
	progress.URL = readtrack.NormalizeURL(progress.URL)
	if err := progress.Validate(); err != nil {
		return err
	}

	progress.UpdatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO progress (url, percent, title, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			percent = excluded.percent,
			title = CASE WHEN excluded.title = '' THEN progress.title ELSE excluded.title END,
			updated_at = excluded.updated_at
	`, progress.URL, progress.Percent, progress.Title, formatTime(progress.UpdatedAt))

	return err
}

// FindProgress retrieves the progress stored for a page.
func (s *ProgressService) FindProgress(ctx context.Context, url string) (*readtrack.Progress, error) {
	var progress readtrack.Progress
	var updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT url, percent, title, updated_at
		FROM progress
		WHERE url = ?
	`, readtrack.NormalizeURL(url)).Scan(&progress.URL, &progress.Percent, &progress.Title, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, readtrack.Errorf(readtrack.ENOTFOUND, "no progress for %s", url)
	}
	if err != nil {
		return nil, err
	}

	if progress.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &progress, nil
}
