package bridge

import (
	"context"
	"time"

	"github.com/fwojciec/readtrack"
)

// Ensure Store implements readtrack.SyncBridge at compile time.
var _ readtrack.SyncBridge = (*Store)(nil)

// Store answers page requests from the quote and progress services.
type Store struct {
	quotes   readtrack.QuoteService
	progress readtrack.ProgressService
	timeout  time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultRequestTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.timeout = d
	}
}

// NewStore creates a new Store.
func NewStore(quotes readtrack.QuoteService, progress readtrack.ProgressService, opts ...Option) *Store {
	s := &Store{
		quotes:   quotes,
		progress: progress,
		timeout:  DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QuotesForPage returns the quotes saved for url. On failure the returned
// slice is empty, never nil, alongside the error.
func (s *Store) QuotesForPage(ctx context.Context, url string) ([]*readtrack.Quote, error) {
	url = readtrack.NormalizeURL(url)
	if url == "" {
		return []*readtrack.Quote{}, readtrack.Errorf(readtrack.EINVALID, "page URL required")
	}
	quotes, err := Request(ctx, s.timeout, []*readtrack.Quote{}, func(ctx context.Context) ([]*readtrack.Quote, error) {
		return s.quotes.FindQuotes(ctx, readtrack.QuoteFilter{URL: &url})
	})
	if quotes == nil {
		quotes = []*readtrack.Quote{}
	}
	return quotes, err
}

// ReportProgress stores the progress of url.
func (s *Store) ReportProgress(ctx context.Context, url string, percent int, title string) error {
	url = readtrack.NormalizeURL(url)
	if url == "" {
		return readtrack.Errorf(readtrack.EINVALID, "page URL required")
	}
	_, err := Request(ctx, s.timeout, struct{}{}, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.progress.ReportProgress(ctx, &readtrack.Progress{
			URL:     url,
			Percent: percent,
			Title:   title,
		})
	})
	return err
}
