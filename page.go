package readtrack

import "context"

// ScrollMetrics describes the vertical scroll state of a page.
type ScrollMetrics struct {
	ScrollTop    int `json:"scrollTop"`
	ScrollHeight int `json:"scrollHeight"`
	ClientHeight int `json:"clientHeight"`
}

// Viewport is the scrollable window a page is displayed in.
type Viewport interface {
	// Metrics returns the current scroll state.
	Metrics(ctx context.Context) (ScrollMetrics, error)

	// ScrollTo scrolls the page so that its top edge is at top pixels.
	ScrollTo(ctx context.Context, top int) error

	// Ready reports whether the page has finished loading.
	Ready(ctx context.Context) (bool, error)
}

// Scroller brings a highlight marker into view.
type Scroller interface {
	// ScrollIntoView scrolls the element matching the CSS selector into the
	// vertical center of the viewport.
	ScrollIntoView(ctx context.Context, selector string) error
}

// SyncBridge carries quote sets and progress reports between a page and the
// data store. Implementations bound every call with a timeout; callers treat
// any error as "no quotes" or "no-op".
type SyncBridge interface {
	// QuotesForPage returns the quotes saved for a normalized page URL.
	QuotesForPage(ctx context.Context, url string) ([]*Quote, error)

	// ReportProgress persists the progress of a page.
	ReportProgress(ctx context.Context, url string, percent int, title string) error
}

// Renderer displays page HTML in place of whatever is currently shown.
type Renderer interface {
	Render(ctx context.Context, html string) error
}
