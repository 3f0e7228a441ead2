package readtrack

import (
	"context"
	"time"
)

// Progress is the last known scroll position of a page as a percentage.
type Progress struct {
	URL       string    `json:"url"`
	Percent   int       `json:"percent"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the progress record contains invalid fields.
func (p *Progress) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "progress URL required")
	}
	if p.Percent < 0 || p.Percent > 100 {
		return Errorf(EINVALID, "progress percent must be between 0 and 100")
	}
	return nil
}

// ProgressService persists reading progress per page.
type ProgressService interface {
	// ReportProgress stores the progress for a page, replacing any previous value.
	ReportProgress(ctx context.Context, progress *Progress) error

	// FindProgress retrieves the progress stored for a page.
	// Returns ENOTFOUND if nothing has been reported for the URL.
	FindProgress(ctx context.Context, url string) (*Progress, error)
}
