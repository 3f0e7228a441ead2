package main_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/readtrack"
	main "github.com/fwojciec/readtrack/cmd/readtrack"
	"github.com/fwojciec/readtrack/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTab is an in-memory browser tab.
type fakeTab struct {
	mock.Viewport
	mock.Scroller
	mock.Renderer

	html   string
	mu     sync.Mutex
	closed bool
}

var _ main.Tab = (*fakeTab)(nil)

func (t *fakeTab) HTML(_ context.Context) (string, error) {
	return t.html, nil
}

func (t *fakeTab) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *fakeTab) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// reports records progress reports from any goroutine.
type reports struct {
	mu      sync.Mutex
	percent []int
}

func (r *reports) add(percent int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.percent = append(r.percent, percent)
}

func (r *reports) last() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.percent) == 0 {
		return 0, false
	}
	return r.percent[len(r.percent)-1], true
}

func TestOpenCmd_Run(t *testing.T) {
	t.Parallel()

	metrics := readtrack.ScrollMetrics{ScrollTop: 500, ScrollHeight: 2000, ClientHeight: 1000}

	t.Run("scrolls to the quote and reports progress until the tab closes", func(t *testing.T) {
		t.Parallel()

		var (
			mu       sync.Mutex
			selector string
			rendered string
			calls    int
		)
		tab := &fakeTab{html: chapterHTML}
		tab.MetricsFn = func(_ context.Context) (readtrack.ScrollMetrics, error) {
			mu.Lock()
			defer mu.Unlock()
			calls++
			if calls > 1 {
				return readtrack.ScrollMetrics{}, errors.New("target closed")
			}
			return metrics, nil
		}
		tab.ScrollIntoViewFn = func(_ context.Context, sel string) error {
			mu.Lock()
			defer mu.Unlock()
			selector = sel
			return nil
		}
		tab.RenderFn = func(_ context.Context, html string) error {
			mu.Lock()
			defer mu.Unlock()
			rendered = html
			return nil
		}

		quote := &readtrack.Quote{ID: "q-1", Text: "worst of times"}
		got := &reports{}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Quotes: &mock.QuoteService{
				FindQuoteByIDFn: func(_ context.Context, id string) (*readtrack.Quote, error) {
					return quote, nil
				},
			},
			Bridge: &mock.SyncBridge{
				QuotesForPageFn: func(_ context.Context, _ string) ([]*readtrack.Quote, error) {
					return []*readtrack.Quote{quote}, nil
				},
				ReportProgressFn: func(_ context.Context, _ string, percent int, _ string) error {
					got.add(percent)
					return nil
				},
			},
			OpenTab: func(_ context.Context, url string) (main.Tab, error) {
				return tab, nil
			},
		}

		cmd := &main.OpenCmd{URL: "https://example.com/book/1", Quote: "q-1", Interval: time.Millisecond}
		err := cmd.Run(deps)

		require.NoError(t, err)
		mu.Lock()
		assert.Equal(t, `[data-readtrack-mark="1"]`, selector)
		assert.Contains(t, rendered, `data-quote-id="q-1"`)
		mu.Unlock()

		percent, ok := got.last()
		require.True(t, ok)
		assert.Equal(t, 50, percent)
		assert.True(t, tab.isClosed())
		assert.Contains(t, stdout.String(), "Reading Chapter 1")
	})

	t.Run("restores stored progress", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var (
			mu  sync.Mutex
			top = -1
		)
		tab := &fakeTab{html: chapterHTML}
		tab.MetricsFn = func(_ context.Context) (readtrack.ScrollMetrics, error) {
			return metrics, nil
		}
		tab.ScrollToFn = func(_ context.Context, y int) error {
			mu.Lock()
			defer mu.Unlock()
			top = y
			cancel()
			return nil
		}
		tab.RenderFn = func(_ context.Context, _ string) error {
			return nil
		}

		deps := &main.Dependencies{
			Ctx:    ctx,
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Progress: &mock.ProgressService{
				FindProgressFn: func(_ context.Context, url string) (*readtrack.Progress, error) {
					assert.Equal(t, "https://example.com/book/1", url)
					return &readtrack.Progress{URL: url, Percent: 30}, nil
				},
			},
			Bridge: &mock.SyncBridge{
				QuotesForPageFn: func(_ context.Context, _ string) ([]*readtrack.Quote, error) {
					return []*readtrack.Quote{}, nil
				},
				ReportProgressFn: func(_ context.Context, _ string, _ int, _ string) error {
					return nil
				},
			},
			OpenTab: func(_ context.Context, _ string) (main.Tab, error) {
				return tab, nil
			},
		}

		cmd := &main.OpenCmd{URL: "https://example.com/book/1/", Interval: time.Millisecond}
		err := cmd.Run(deps)

		require.NoError(t, err)
		mu.Lock()
		assert.Equal(t, 300, top)
		mu.Unlock()
	})

	t.Run("reports tab failures", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			OpenTab: func(_ context.Context, _ string) (main.Tab, error) {
				return nil, errors.New("browser crashed")
			},
		}

		err := (&main.OpenCmd{URL: "https://example.com/book/1"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "browser crashed")
	})
}
