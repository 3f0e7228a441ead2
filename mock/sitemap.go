package mock

import (
	"context"

	"github.com/fwojciec/readtrack"
)

var _ readtrack.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of readtrack.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *readtrack.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *readtrack.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
