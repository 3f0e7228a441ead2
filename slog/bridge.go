package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readtrack"
)

// Ensure LoggingBridge implements readtrack.SyncBridge.
var _ readtrack.SyncBridge = (*LoggingBridge)(nil)

// LoggingBridge wraps a SyncBridge with logging of every round trip.
type LoggingBridge struct {
	next   readtrack.SyncBridge
	logger *slog.Logger
}

// NewLoggingBridge creates a new LoggingBridge.
func NewLoggingBridge(next readtrack.SyncBridge, logger *slog.Logger) *LoggingBridge {
	return &LoggingBridge{next: next, logger: logger}
}

// QuotesForPage delegates to the wrapped bridge and logs the quote count.
func (b *LoggingBridge) QuotesForPage(ctx context.Context, url string) (quotes []*readtrack.Quote, err error) {
	defer func(begin time.Time) {
		b.logger.Log(ctx, level(err), "quotes for page",
			"url", url,
			"count", len(quotes),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.QuotesForPage(ctx, url)
}

// ReportProgress delegates to the wrapped bridge and logs the percentage.
func (b *LoggingBridge) ReportProgress(ctx context.Context, url string, percent int, title string) (err error) {
	defer func(begin time.Time) {
		b.logger.Log(ctx, level(err), "report progress",
			"url", url,
			"percent", percent,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.ReportProgress(ctx, url, percent, title)
}
