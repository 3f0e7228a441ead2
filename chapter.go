package readtrack

import "context"

// Chapter is one page belonging to a multi-page material.
type Chapter struct {
	ID         string `json:"id"`
	MaterialID string `json:"materialId"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	Position   int    `json:"position"`
}

// Validate returns an error if the chapter contains invalid fields.
func (c *Chapter) Validate() error {
	if c.MaterialID == "" {
		return Errorf(EINVALID, "chapter material ID required")
	}
	if c.URL == "" {
		return Errorf(EINVALID, "chapter URL required")
	}
	if c.Position < 0 {
		return Errorf(EINVALID, "chapter position must not be negative")
	}
	return nil
}

// ChapterService represents a service for managing chapters.
type ChapterService interface {
	// CreateChapter creates a new chapter.
	CreateChapter(ctx context.Context, chapter *Chapter) error

	// FindChapters retrieves chapters matching the filter, ordered by position.
	FindChapters(ctx context.Context, filter ChapterFilter) ([]*Chapter, error)

	// DeleteChaptersByMaterial removes all chapters for a material.
	DeleteChaptersByMaterial(ctx context.Context, materialID string) error
}

// ChapterFilter represents a filter for FindChapters.
type ChapterFilter struct {
	MaterialID *string `json:"materialId"`
	URL        *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
