package rod_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/readtrack/mock"
	"github.com/fwojciec/readtrack/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	t.Run("logs successful fetches", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		f := rod.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		}, logger)

		html, err := f.Fetch(context.Background(), "https://example.com/ch1")

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Contains(t, buf.String(), "msg=fetch")
		assert.Contains(t, buf.String(), "url=https://example.com/ch1")
		assert.Contains(t, buf.String(), "bytes=13")
	})

	t.Run("logs errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		f := rod.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("navigation failed")
			},
		}, logger)

		_, err := f.Fetch(context.Background(), "https://example.com/ch1")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="navigation failed"`)
	})

	t.Run("delegates Close", func(t *testing.T) {
		t.Parallel()

		closed := false
		f := rod.NewLoggingFetcher(&mock.Fetcher{
			CloseFn: func() error {
				closed = true
				return nil
			},
		}, slog.New(slog.DiscardHandler))

		require.NoError(t, f.Close())
		assert.True(t, closed)
	})
}
