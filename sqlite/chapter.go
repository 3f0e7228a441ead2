package sqlite

import (
	"context"
	"strings"

	"github.com/fwojciec/readtrack"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ readtrack.ChapterService = (*ChapterService)(nil)

// ChapterService implements readtrack.ChapterService using SQLite.
type ChapterService struct {
	db *DB
}

// NewChapterService creates a new ChapterService.
func NewChapterService(db *DB) *ChapterService {
	return &ChapterService{db: db}
}

// CreateChapter creates a new chapter.
func (s *ChapterService) CreateChapter(ctx context.Context, chapter *readtrack.Chapter) error {
	if err := chapter.Validate(); err != nil {
		return err
	}

	chapter.ID = uuid.New().String()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chapters (id, material_id, url, title, position)
		VALUES (?, ?, ?, ?, ?)
	`, chapter.ID, chapter.MaterialID, chapter.URL, chapter.Title, chapter.Position)

	return err
}

// FindChapters retrieves chapters matching the filter, ordered by position.
func (s *ChapterService) FindChapters(ctx context.Context, filter readtrack.ChapterFilter) ([]*readtrack.Chapter, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, material_id, url, title, position FROM chapters WHERE 1=1")

	if filter.MaterialID != nil {
		query.WriteString(" AND material_id = ?")
		args = append(args, *filter.MaterialID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY position ASC, rowid ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []*readtrack.Chapter
	for rows.Next() {
		var chapter readtrack.Chapter
		if err := rows.Scan(&chapter.ID, &chapter.MaterialID, &chapter.URL, &chapter.Title, &chapter.Position); err != nil {
			return nil, err
		}
		chapters = append(chapters, &chapter)
	}

	return chapters, rows.Err()
}

// DeleteChaptersByMaterial removes all chapters for a material.
func (s *ChapterService) DeleteChaptersByMaterial(ctx context.Context, materialID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chapters WHERE material_id = ?", materialID)
	return err
}
