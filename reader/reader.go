// Package reader ties the highlighter and progress tracker of one open page
// to a sync bridge. Bridge failures never surface to the page: a failed
// quote lookup means no quotes and a failed report is dropped.
package reader

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/readtrack"
	"github.com/fwojciec/readtrack/bridge"
	"github.com/fwojciec/readtrack/goquery"
	"github.com/fwojciec/readtrack/progress"
)

// Reader is a reading session for a single page. It is safe for concurrent
// use.
type Reader struct {
	url    string
	title  string
	page   *goquery.Page
	bridge readtrack.SyncBridge

	viewport     readtrack.Viewport
	scroller     readtrack.Scroller
	renderer     readtrack.Renderer
	trackerOpts  []progress.Option
	readyTimeout time.Duration
	pollInterval time.Duration

	mu          sync.Mutex
	highlighter *goquery.Highlighter
	tracker     *progress.Tracker
	rendered    string
}

// Option configures a Reader.
type Option func(*Reader)

// WithViewport enables progress tracking and readiness checks.
func WithViewport(v readtrack.Viewport) Option {
	return func(r *Reader) {
		r.viewport = v
	}
}

// WithScroller sets where markers are scrolled into view.
func WithScroller(s readtrack.Scroller) Option {
	return func(r *Reader) {
		r.scroller = s
	}
}

// WithRenderer sets where the page is shown. The renderer receives the page
// HTML whenever markers change before anything is scrolled.
func WithRenderer(rr readtrack.Renderer) Option {
	return func(r *Reader) {
		r.renderer = rr
	}
}

// WithTrackerOptions passes options to the progress tracker.
func WithTrackerOptions(opts ...progress.Option) Option {
	return func(r *Reader) {
		r.trackerOpts = append(r.trackerOpts, opts...)
	}
}

// WithReadyTimeout bounds the wait for the page to finish loading.
// Defaults to bridge.DefaultReadyTimeout if not specified.
func WithReadyTimeout(d time.Duration) Option {
	return func(r *Reader) {
		r.readyTimeout = d
	}
}

// WithPollInterval sets the pause between readiness checks.
// Defaults to bridge.DefaultPollInterval if not specified.
func WithPollInterval(d time.Duration) Option {
	return func(r *Reader) {
		r.pollInterval = d
	}
}

// New returns a Reader for page, which was loaded from url.
func New(url string, page *goquery.Page, b readtrack.SyncBridge, opts ...Option) *Reader {
	r := &Reader{
		url:          readtrack.NormalizeURL(url),
		title:        page.Title(),
		page:         page,
		bridge:       b,
		readyTimeout: bridge.DefaultReadyTimeout,
		pollInterval: bridge.DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(r)
	}

	var scroller readtrack.Scroller
	if r.scroller != nil {
		scroller = &syncScroller{r: r}
	}
	r.highlighter = goquery.NewHighlighter(page, scroller)
	if r.viewport != nil {
		r.tracker = progress.NewTracker(r.viewport, r.report, r.trackerOpts...)
	}
	return r
}

// URL returns the normalized page URL.
func (r *Reader) URL() string {
	return r.url
}

// Title returns the page title.
func (r *Reader) Title() string {
	return r.title
}

// HTML renders the page with its current markers.
func (r *Reader) HTML() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page.HTML()
}

// Selection captures the text of a user selection with its context.
func (r *Reader) Selection(rng goquery.Range) readtrack.Selection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page.Selection(rng)
}

// RefreshHighlights fetches the quotes saved for the page and applies them
// unless the same set is already shown. It reports whether the markers
// changed. When the quotes cannot be fetched the markers are left as they
// are. The returned error only reflects a failed render.
func (r *Reader) RefreshHighlights(ctx context.Context) (bool, error) {
	quotes, err := r.bridge.QuotesForPage(ctx, r.url)
	if err != nil {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.highlighter.Refresh(r.url, quotes) {
		return false, nil
	}
	return true, r.sync(ctx)
}

// ScrollToQuote waits for the page to load, then brings the marker for q
// into view. The wait is bounded; on timeout the scroll is attempted
// anyway. It reports whether a marker was found.
func (r *Reader) ScrollToQuote(ctx context.Context, q *readtrack.Quote) (bool, error) {
	r.waitReady(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	found, err := r.highlighter.ScrollToQuote(ctx, q, r.reload)
	if err != nil {
		return found, err
	}
	return found, r.sync(ctx)
}

// ScrollToProgress waits for the page to load and scrolls to percent.
// Without a viewport it does nothing.
func (r *Reader) ScrollToProgress(ctx context.Context, percent int) error {
	if r.tracker == nil {
		return nil
	}
	r.waitReady(ctx)
	return r.tracker.Restore(ctx, percent)
}

// OnScroll schedules a debounced progress report. It reports whether a new
// report was scheduled.
func (r *Reader) OnScroll(ctx context.Context) bool {
	if r.tracker == nil {
		return false
	}
	return r.tracker.ScheduleReport(ctx)
}

// Progress returns the current progress of the page.
func (r *Reader) Progress(ctx context.Context) (int, error) {
	if r.tracker == nil {
		return 0, readtrack.Errorf(readtrack.EINVALID, "page has no viewport")
	}
	return r.tracker.Compute(ctx)
}

func (r *Reader) report(ctx context.Context, percent int) {
	_ = r.bridge.ReportProgress(ctx, r.url, percent, r.title)
}

func (r *Reader) reload(ctx context.Context) ([]*readtrack.Quote, error) {
	return r.bridge.QuotesForPage(ctx, r.url)
}

func (r *Reader) waitReady(ctx context.Context) {
	if r.viewport == nil {
		return
	}
	bridge.Poll(ctx, r.pollInterval, r.readyTimeout, r.viewport.Ready)
}

// sync pushes the page to the renderer if it changed since the last push.
// Callers hold mu.
func (r *Reader) sync(ctx context.Context) error {
	if r.renderer == nil {
		return nil
	}
	html, err := r.page.HTML()
	if err != nil {
		return err
	}
	if html == r.rendered {
		return nil
	}
	if err := r.renderer.Render(ctx, html); err != nil {
		return err
	}
	r.rendered = html
	return nil
}

// syncScroller renders pending marker changes before scrolling so the
// selector resolves in what is shown.
type syncScroller struct {
	r *Reader
}

func (s *syncScroller) ScrollIntoView(ctx context.Context, selector string) error {
	if err := s.r.sync(ctx); err != nil {
		return err
	}
	return s.r.scroller.ScrollIntoView(ctx, selector)
}
