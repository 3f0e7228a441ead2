package rod

import (
	"context"

	"github.com/fwojciec/readtrack"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Compile-time interface verification.
var (
	_ readtrack.Viewport = (*Page)(nil)
	_ readtrack.Scroller = (*Page)(nil)
	_ readtrack.Renderer = (*Page)(nil)
)

// Page is a browser tab the user reads in.
type Page struct {
	page *rod.Page
}

// OpenPage opens url in a new tab of the manager's browser and waits for it
// to load.
func OpenPage(ctx context.Context, manager *BrowserManager, url string) (*Page, error) {
	page, err := manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	manager.IncrementPageCount()

	loading := page.Context(ctx)
	if err := loading.Navigate(url); err != nil {
		_ = page.Close()
		return nil, err
	}
	if err := loading.WaitLoad(); err != nil {
		_ = page.Close()
		return nil, err
	}
	return &Page{page: page}, nil
}

// HTML returns the rendered document.
func (p *Page) HTML(ctx context.Context) (string, error) {
	return p.page.Context(ctx).HTML()
}

// Metrics returns the scroll state of the document.
func (p *Page) Metrics(ctx context.Context) (readtrack.ScrollMetrics, error) {
	res, err := p.page.Context(ctx).Eval(`() => {
		const el = document.scrollingElement || document.documentElement;
		return {scrollTop: el.scrollTop, scrollHeight: el.scrollHeight, clientHeight: el.clientHeight};
	}`)
	if err != nil {
		return readtrack.ScrollMetrics{}, err
	}
	return readtrack.ScrollMetrics{
		ScrollTop:    res.Value.Get("scrollTop").Int(),
		ScrollHeight: res.Value.Get("scrollHeight").Int(),
		ClientHeight: res.Value.Get("clientHeight").Int(),
	}, nil
}

// ScrollTo scrolls the document to top pixels.
func (p *Page) ScrollTo(ctx context.Context, top int) error {
	_, err := p.page.Context(ctx).Eval(`(top) => window.scrollTo(0, top)`, top)
	return err
}

// Ready reports whether the document has finished loading.
func (p *Page) Ready(ctx context.Context) (bool, error) {
	res, err := p.page.Context(ctx).Eval(`() => document.readyState === 'complete'`)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

// ScrollIntoView centers the first element matching selector.
// Returns ENOTFOUND if nothing matches.
func (p *Page) ScrollIntoView(ctx context.Context, selector string) error {
	res, err := p.page.Context(ctx).Eval(`(sel) => {
		const el = document.querySelector(sel);
		if (!el) return false;
		el.scrollIntoView({block: 'center', behavior: 'smooth'});
		return true;
	}`, selector)
	if err != nil {
		return err
	}
	if !res.Value.Bool() {
		return readtrack.Errorf(readtrack.ENOTFOUND, "no element matches %s", selector)
	}
	return nil
}

// Render replaces the document with html.
func (p *Page) Render(ctx context.Context, html string) error {
	return p.page.Context(ctx).SetDocumentContent(html)
}

// Close closes the tab.
func (p *Page) Close() error {
	return p.page.Close()
}
