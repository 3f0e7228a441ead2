package mock

import (
	"context"

	"github.com/fwojciec/readtrack"
)

var _ readtrack.ProgressService = (*ProgressService)(nil)

// ProgressService is a mock implementation of readtrack.ProgressService.
type ProgressService struct {
	ReportProgressFn func(ctx context.Context, progress *readtrack.Progress) error
	FindProgressFn   func(ctx context.Context, url string) (*readtrack.Progress, error)
}

func (s *ProgressService) ReportProgress(ctx context.Context, progress *readtrack.Progress) error {
	return s.ReportProgressFn(ctx, progress)
}

func (s *ProgressService) FindProgress(ctx context.Context, url string) (*readtrack.Progress, error) {
	return s.FindProgressFn(ctx, url)
}
