package progress_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/readtrack"
	"github.com/fwojciec/readtrack/mock"
	"github.com/fwojciec/readtrack/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    readtrack.ScrollMetrics
		want int
	}{
		{"top", readtrack.ScrollMetrics{ScrollTop: 0, ScrollHeight: 1500, ClientHeight: 500}, 0},
		{"middle", readtrack.ScrollMetrics{ScrollTop: 500, ScrollHeight: 1500, ClientHeight: 500}, 50},
		{"bottom", readtrack.ScrollMetrics{ScrollTop: 1000, ScrollHeight: 1500, ClientHeight: 500}, 100},
		{"rounds", readtrack.ScrollMetrics{ScrollTop: 1, ScrollHeight: 303, ClientHeight: 3}, 0},
		{"rounds half up", readtrack.ScrollMetrics{ScrollTop: 1, ScrollHeight: 200, ClientHeight: 0}, 1},
		{"clamps overscroll", readtrack.ScrollMetrics{ScrollTop: 1200, ScrollHeight: 1500, ClientHeight: 500}, 100},
		{"clamps negative", readtrack.ScrollMetrics{ScrollTop: -40, ScrollHeight: 1500, ClientHeight: 500}, 0},
		{"short page at top", readtrack.ScrollMetrics{ScrollTop: 0, ScrollHeight: 400, ClientHeight: 800}, 0},
		{"short page scrolled", readtrack.ScrollMetrics{ScrollTop: 1, ScrollHeight: 400, ClientHeight: 800}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, progress.ComputePercent(tt.m))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, m := range []readtrack.ScrollMetrics{
		{ScrollHeight: 10000, ClientHeight: 800},
		{ScrollHeight: 2034, ClientHeight: 800},
		{ScrollHeight: 901, ClientHeight: 700},
	} {
		for p := 0; p <= 100; p++ {
			m.ScrollTop = progress.TargetScrollTop(p, m)
			assert.Equal(t, p, progress.ComputePercent(m), "percent %d height %d", p, m.ScrollHeight)
		}
	}
}

// timers records scheduled functions so tests decide when they run.
type timers struct {
	mu      sync.Mutex
	delays  []time.Duration
	pending []func()
}

func (ts *timers) AfterFunc(d time.Duration, f func()) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.delays = append(ts.delays, d)
	ts.pending = append(ts.pending, f)
}

// Fire runs every pending function.
func (ts *timers) Fire() {
	ts.mu.Lock()
	fns := ts.pending
	ts.pending = nil
	ts.mu.Unlock()
	for _, f := range fns {
		f()
	}
}

func (ts *timers) Pending() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.pending)
}

// page is a viewport whose scroll position tests move directly.
type page struct {
	mu      sync.Mutex
	metrics readtrack.ScrollMetrics
}

func (p *page) viewport() *mock.Viewport {
	return &mock.Viewport{
		MetricsFn: func(context.Context) (readtrack.ScrollMetrics, error) {
			p.mu.Lock()
			defer p.mu.Unlock()
			return p.metrics, nil
		},
		ScrollToFn: func(_ context.Context, top int) error {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.metrics.ScrollTop = top
			return nil
		},
	}
}

func (p *page) scrollTo(top int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.metrics.ScrollTop = top
}

func newPage() *page {
	return &page{metrics: readtrack.ScrollMetrics{ScrollHeight: 1100, ClientHeight: 100}}
}

func TestTracker_ScheduleReport(t *testing.T) {
	t.Parallel()

	t.Run("coalesces triggers into one report", func(t *testing.T) {
		t.Parallel()

		ts := &timers{}
		p := newPage()
		var reports []int
		tracker := progress.NewTracker(p.viewport(), func(_ context.Context, percent int) {
			reports = append(reports, percent)
		}, progress.WithAfterFunc(ts.AfterFunc))

		assert.True(t, tracker.ScheduleReport(context.Background()))
		p.scrollTo(200)
		assert.False(t, tracker.ScheduleReport(context.Background()))
		p.scrollTo(300)
		assert.False(t, tracker.ScheduleReport(context.Background()))

		assert.Equal(t, 1, ts.Pending())
		assert.Equal(t, []time.Duration{progress.DefaultDebounce}, ts.delays)
		ts.Fire()

		assert.Equal(t, []int{30}, reports)
		assert.True(t, tracker.ScheduleReport(context.Background()))
	})

	t.Run("suppresses changes under two points", func(t *testing.T) {
		t.Parallel()

		ts := &timers{}
		p := newPage()
		var reports []int
		tracker := progress.NewTracker(p.viewport(), func(_ context.Context, percent int) {
			reports = append(reports, percent)
		}, progress.WithAfterFunc(ts.AfterFunc))

		for _, top := range []int{500, 510, 490, 520, 300} {
			p.scrollTo(top)
			tracker.ScheduleReport(context.Background())
			ts.Fire()
		}

		assert.Equal(t, []int{50, 52, 30}, reports)
		last, ok := tracker.LastReported()
		assert.True(t, ok)
		assert.Equal(t, 30, last)
	})

	t.Run("first report is always emitted", func(t *testing.T) {
		t.Parallel()

		ts := &timers{}
		var reports []int
		tracker := progress.NewTracker(newPage().viewport(), func(_ context.Context, percent int) {
			reports = append(reports, percent)
		}, progress.WithAfterFunc(ts.AfterFunc))

		_, ok := tracker.LastReported()
		assert.False(t, ok)
		tracker.ScheduleReport(context.Background())
		ts.Fire()

		assert.Equal(t, []int{0}, reports)
	})

	t.Run("drops the report when metrics fail", func(t *testing.T) {
		t.Parallel()

		ts := &timers{}
		viewport := &mock.Viewport{
			MetricsFn: func(context.Context) (readtrack.ScrollMetrics, error) {
				return readtrack.ScrollMetrics{}, errors.New("page closed")
			},
		}
		tracker := progress.NewTracker(viewport, func(context.Context, int) {
			t.Fatal("report must not be called")
		}, progress.WithAfterFunc(ts.AfterFunc))

		tracker.ScheduleReport(context.Background())
		ts.Fire()

		assert.True(t, tracker.ScheduleReport(context.Background()))
	})

	t.Run("fires after the debounce with real timers", func(t *testing.T) {
		t.Parallel()

		done := make(chan int, 1)
		tracker := progress.NewTracker(newPage().viewport(), func(_ context.Context, percent int) {
			done <- percent
		}, progress.WithDebounce(10*time.Millisecond))

		ctx, cancel := context.WithCancel(context.Background())
		tracker.ScheduleReport(ctx)
		cancel()

		select {
		case percent := <-done:
			assert.Equal(t, 0, percent)
		case <-time.After(2 * time.Second):
			t.Fatal("report not emitted")
		}
	})
}

func TestTracker_Restore(t *testing.T) {
	t.Parallel()

	t.Run("scrolls to the target and reconciles", func(t *testing.T) {
		t.Parallel()

		ts := &timers{}
		p := newPage()
		var reports []int
		tracker := progress.NewTracker(p.viewport(), func(_ context.Context, percent int) {
			reports = append(reports, percent)
		}, progress.WithAfterFunc(ts.AfterFunc))

		err := tracker.Restore(context.Background(), 42)
		require.NoError(t, err)

		assert.Equal(t, 420, p.metrics.ScrollTop)
		assert.Equal(t, []time.Duration{progress.DefaultSettleDelay}, ts.delays)
		assert.Empty(t, reports)
		ts.Fire()
		assert.Equal(t, []int{42}, reports)

		percent, err := tracker.Compute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 42, percent)
	})

	t.Run("clamps the requested percent", func(t *testing.T) {
		t.Parallel()

		ts := &timers{}
		p := newPage()
		tracker := progress.NewTracker(p.viewport(), func(context.Context, int) {}, progress.WithAfterFunc(ts.AfterFunc))

		require.NoError(t, tracker.Restore(context.Background(), 140))
		assert.Equal(t, 1000, p.metrics.ScrollTop)
		require.NoError(t, tracker.Restore(context.Background(), -3))
		assert.Equal(t, 0, p.metrics.ScrollTop)
	})

	t.Run("returns scroll errors", func(t *testing.T) {
		t.Parallel()

		ts := &timers{}
		viewport := &mock.Viewport{
			MetricsFn: func(context.Context) (readtrack.ScrollMetrics, error) {
				return readtrack.ScrollMetrics{ScrollHeight: 2000, ClientHeight: 1000}, nil
			},
			ScrollToFn: func(context.Context, int) error { return errors.New("detached") },
		}
		tracker := progress.NewTracker(viewport, func(context.Context, int) {}, progress.WithAfterFunc(ts.AfterFunc))

		err := tracker.Restore(context.Background(), 50)

		assert.EqualError(t, err, "detached")
		assert.Equal(t, 0, ts.Pending())
	})
}
