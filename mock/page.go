package mock

import (
	"context"

	"github.com/fwojciec/readtrack"
)

// Compile-time interface verification.
var (
	_ readtrack.Viewport   = (*Viewport)(nil)
	_ readtrack.Scroller   = (*Scroller)(nil)
	_ readtrack.SyncBridge = (*SyncBridge)(nil)
	_ readtrack.Renderer   = (*Renderer)(nil)
)

// Viewport is a mock implementation of readtrack.Viewport.
type Viewport struct {
	MetricsFn  func(ctx context.Context) (readtrack.ScrollMetrics, error)
	ScrollToFn func(ctx context.Context, top int) error
	ReadyFn    func(ctx context.Context) (bool, error)
}

func (v *Viewport) Metrics(ctx context.Context) (readtrack.ScrollMetrics, error) {
	return v.MetricsFn(ctx)
}

func (v *Viewport) ScrollTo(ctx context.Context, top int) error {
	return v.ScrollToFn(ctx, top)
}

func (v *Viewport) Ready(ctx context.Context) (bool, error) {
	if v.ReadyFn == nil {
		return true, nil
	}
	return v.ReadyFn(ctx)
}

// Scroller is a mock implementation of readtrack.Scroller.
type Scroller struct {
	ScrollIntoViewFn func(ctx context.Context, selector string) error
}

func (s *Scroller) ScrollIntoView(ctx context.Context, selector string) error {
	return s.ScrollIntoViewFn(ctx, selector)
}

// SyncBridge is a mock implementation of readtrack.SyncBridge.
type SyncBridge struct {
	QuotesForPageFn  func(ctx context.Context, url string) ([]*readtrack.Quote, error)
	ReportProgressFn func(ctx context.Context, url string, percent int, title string) error
}

func (b *SyncBridge) QuotesForPage(ctx context.Context, url string) ([]*readtrack.Quote, error) {
	return b.QuotesForPageFn(ctx, url)
}

func (b *SyncBridge) ReportProgress(ctx context.Context, url string, percent int, title string) error {
	return b.ReportProgressFn(ctx, url, percent, title)
}

// Renderer is a mock implementation of readtrack.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, html string) error
}

func (r *Renderer) Render(ctx context.Context, html string) error {
	return r.RenderFn(ctx, html)
}
