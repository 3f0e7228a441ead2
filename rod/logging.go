package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readtrack"
)

// Ensure LoggingFetcher implements readtrack.Fetcher.
var _ readtrack.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   readtrack.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next readtrack.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// LoggingPage wraps a Page with logging of the calls that move the reader.
// Metrics and Ready are polled and are not logged.
type LoggingPage struct {
	*Page
	logger *slog.Logger
}

// NewLoggingPage creates a new LoggingPage.
func NewLoggingPage(page *Page, logger *slog.Logger) *LoggingPage {
	return &LoggingPage{Page: page, logger: logger}
}

// ScrollTo logs the target offset and delegates to the wrapped page.
func (p *LoggingPage) ScrollTo(ctx context.Context, top int) (err error) {
	defer func(begin time.Time) {
		p.logger.Info("scroll", "top", top, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return p.Page.ScrollTo(ctx, top)
}

// ScrollIntoView logs the selector and delegates to the wrapped page.
func (p *LoggingPage) ScrollIntoView(ctx context.Context, selector string) (err error) {
	defer func(begin time.Time) {
		p.logger.Info("scroll_into_view", "selector", selector, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return p.Page.ScrollIntoView(ctx, selector)
}

// Render logs the document size and delegates to the wrapped page.
func (p *LoggingPage) Render(ctx context.Context, html string) (err error) {
	defer func(begin time.Time) {
		p.logger.Info("render", "bytes", len(html), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return p.Page.Render(ctx, html)
}
