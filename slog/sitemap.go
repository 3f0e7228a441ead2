// Package slog provides log/slog decorators for readtrack services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readtrack"
)

var _ readtrack.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs every chapter discovery made through a
// SitemapService.
type LoggingSitemapService struct {
	next   readtrack.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next readtrack.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *readtrack.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", baseURL,
			"found", len(urls),
			"duration", time.Since(begin),
		}
		if filter != nil {
			attrs = append(attrs, "include", len(filter.Include), "exclude", len(filter.Exclude))
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		s.logger.Log(ctx, level(err), "sitemap discovery", attrs...)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}

// level picks Warn for failed calls and Info otherwise.
func level(err error) slog.Level {
	if err != nil {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}
