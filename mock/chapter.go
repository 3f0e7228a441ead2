package mock

import (
	"context"

	"github.com/fwojciec/readtrack"
)

var _ readtrack.ChapterService = (*ChapterService)(nil)

// ChapterService is a mock implementation of readtrack.ChapterService.
type ChapterService struct {
	CreateChapterFn            func(ctx context.Context, chapter *readtrack.Chapter) error
	FindChaptersFn             func(ctx context.Context, filter readtrack.ChapterFilter) ([]*readtrack.Chapter, error)
	DeleteChaptersByMaterialFn func(ctx context.Context, materialID string) error
}

func (s *ChapterService) CreateChapter(ctx context.Context, chapter *readtrack.Chapter) error {
	return s.CreateChapterFn(ctx, chapter)
}

func (s *ChapterService) FindChapters(ctx context.Context, filter readtrack.ChapterFilter) ([]*readtrack.Chapter, error) {
	return s.FindChaptersFn(ctx, filter)
}

func (s *ChapterService) DeleteChaptersByMaterial(ctx context.Context, materialID string) error {
	return s.DeleteChaptersByMaterialFn(ctx, materialID)
}
