package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/readtrack"
	"github.com/fwojciec/readtrack/mock"
	rtslog "github.com/fwojciec/readtrack/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingBridge_QuotesForPage(t *testing.T) {
	t.Parallel()

	t.Run("logs url and quote count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SyncBridge{
			QuotesForPageFn: func(ctx context.Context, url string) ([]*readtrack.Quote, error) {
				return []*readtrack.Quote{{ID: "q1"}, {ID: "q2"}, {ID: "q3"}}, nil
			},
		}

		b := rtslog.NewLoggingBridge(inner, logger)
		quotes, err := b.QuotesForPage(context.Background(), "https://example.com/ch1")

		require.NoError(t, err)
		assert.Len(t, quotes, 3)
		output := buf.String()
		assert.Contains(t, output, `msg="quotes for page"`)
		assert.Contains(t, output, "url=https://example.com/ch1")
		assert.Contains(t, output, "count=3")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SyncBridge{
			QuotesForPageFn: func(ctx context.Context, url string) ([]*readtrack.Quote, error) {
				return []*readtrack.Quote{}, errors.New("store unavailable")
			},
		}

		b := rtslog.NewLoggingBridge(inner, logger)
		quotes, err := b.QuotesForPage(context.Background(), "https://example.com/ch1")

		require.Error(t, err)
		assert.Empty(t, quotes)
		output := buf.String()
		assert.Contains(t, output, "count=0")
		assert.Contains(t, output, `err="store unavailable"`)
		assert.Contains(t, output, "level=WARN")
	})
}

func TestLoggingBridge_ReportProgress(t *testing.T) {
	t.Parallel()

	t.Run("logs url and percent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		var gotTitle string
		inner := &mock.SyncBridge{
			ReportProgressFn: func(ctx context.Context, url string, percent int, title string) error {
				gotTitle = title
				return nil
			},
		}

		b := rtslog.NewLoggingBridge(inner, logger)
		err := b.ReportProgress(context.Background(), "https://example.com/ch1", 42, "Chapter 1")

		require.NoError(t, err)
		assert.Equal(t, "Chapter 1", gotTitle)
		output := buf.String()
		assert.Contains(t, output, `msg="report progress"`)
		assert.Contains(t, output, "url=https://example.com/ch1")
		assert.Contains(t, output, "percent=42")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SyncBridge{
			ReportProgressFn: func(ctx context.Context, url string, percent int, title string) error {
				return errors.New("timeout")
			},
		}

		b := rtslog.NewLoggingBridge(inner, logger)
		err := b.ReportProgress(context.Background(), "https://example.com/ch1", 10, "")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=timeout")
	})
}
