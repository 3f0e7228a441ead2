// Package progress computes, restores and reports the scroll position of a
// page as a whole percentage.
package progress

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/fwojciec/readtrack"
)

// Default timings.
const (
	// DefaultDebounce is the quiet period before a scheduled report fires.
	DefaultDebounce = 750 * time.Millisecond

	// DefaultSettleDelay is the wait after a programmatic scroll before the
	// reconciling report, giving layout time to settle.
	DefaultSettleDelay = 250 * time.Millisecond
)

// MinDelta is the smallest change in percentage points worth reporting.
const MinDelta = 2

// ComputePercent converts scroll metrics into a percentage between 0 and 100.
// Pages that cannot scroll use a denominator of 1.
func ComputePercent(m readtrack.ScrollMetrics) int {
	p := int(math.Round(float64(m.ScrollTop) / float64(scrollable(m)) * 100))
	return min(max(p, 0), 100)
}

// TargetScrollTop is the inverse of ComputePercent.
func TargetScrollTop(percent int, m readtrack.ScrollMetrics) int {
	return int(math.Round(float64(percent) / 100 * float64(scrollable(m))))
}

func scrollable(m readtrack.ScrollMetrics) int {
	return max(1, m.ScrollHeight-m.ClientHeight)
}

// ReportFunc receives the progress of the page.
type ReportFunc func(ctx context.Context, percent int)

// AfterFunc runs f in its own goroutine after d elapses.
type AfterFunc func(d time.Duration, f func())

// Tracker reports the scroll progress of one page. Reports are debounced:
// at most one timer is pending at a time and triggers arriving while it is
// pending are dropped. Tracker is safe for concurrent use.
type Tracker struct {
	viewport  readtrack.Viewport
	report    ReportFunc
	afterFunc AfterFunc
	debounce  time.Duration
	settle    time.Duration

	mu       sync.Mutex
	pending  bool
	reported bool
	last     int
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithAfterFunc replaces the timer source. Defaults to time.AfterFunc.
func WithAfterFunc(fn AfterFunc) Option {
	return func(t *Tracker) {
		t.afterFunc = fn
	}
}

// WithDebounce sets the debounce period. Defaults to DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(t *Tracker) {
		t.debounce = d
	}
}

// WithSettleDelay sets the delay before the report that follows Restore.
// Defaults to DefaultSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(t *Tracker) {
		t.settle = d
	}
}

// NewTracker returns a Tracker reading from viewport and emitting to report.
func NewTracker(viewport readtrack.Viewport, report ReportFunc, opts ...Option) *Tracker {
	t := &Tracker{
		viewport: viewport,
		report:   report,
		debounce: DefaultDebounce,
		settle:   DefaultSettleDelay,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Compute returns the current progress of the page.
func (t *Tracker) Compute(ctx context.Context) (int, error) {
	m, err := t.viewport.Metrics(ctx)
	if err != nil {
		return 0, err
	}
	return ComputePercent(m), nil
}

// ScheduleReport arms the debounce timer unless it is already pending and
// reports whether it did. When the timer fires the current progress is
// emitted if it moved at least MinDelta points since the last report.
func (t *Tracker) ScheduleReport(ctx context.Context) bool {
	t.mu.Lock()
	if t.pending {
		t.mu.Unlock()
		return false
	}
	t.pending = true
	t.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	t.afterFunc(t.debounce, func() {
		t.mu.Lock()
		t.pending = false
		t.mu.Unlock()
		t.emit(ctx)
	})
	return true
}

// Restore scrolls the page to percent and, once layout has settled, emits a
// report so stored progress matches the applied position.
func (t *Tracker) Restore(ctx context.Context, percent int) error {
	percent = min(max(percent, 0), 100)

	m, err := t.viewport.Metrics(ctx)
	if err != nil {
		return err
	}
	if err := t.viewport.ScrollTo(ctx, TargetScrollTop(percent, m)); err != nil {
		return err
	}

	ctx = context.WithoutCancel(ctx)
	t.afterFunc(t.settle, func() {
		t.emit(ctx)
	})
	return nil
}

// LastReported returns the last emitted percentage, if any.
func (t *Tracker) LastReported() (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.reported
}

func (t *Tracker) emit(ctx context.Context) {
	percent, err := t.Compute(ctx)
	if err != nil {
		return
	}

	t.mu.Lock()
	if t.reported && abs(percent-t.last) < MinDelta {
		t.mu.Unlock()
		return
	}
	t.reported, t.last = true, percent
	t.mu.Unlock()

	t.report(ctx, percent)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
