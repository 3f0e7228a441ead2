package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of fetched pages after which a headless
// browser is replaced.
const DefaultMaxPages = 75

// chrome is a running browser together with the process that launched it.
type chrome struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func (c chrome) stop() error {
	var err error
	if c.browser != nil {
		err = c.browser.Close()
	}
	if c.launcher != nil {
		c.launcher.Kill()
	}
	return err
}

// BrowserManager owns a Chrome instance.
//
// A headless manager backs fetches and swaps in a fresh browser every
// maxPages pages because Chrome memory never returns to its baseline. A
// headful manager shows the pages the user reads and keeps one browser for
// its whole life.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	current  chrome
	headless bool
	maxPages int64
	loaded   atomic.Int64
	closed   atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages a headless browser loads before it is
// replaced.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithHeadful shows the browser window and never replaces the browser.
func WithHeadful() ManagerOption {
	return func(bm *BrowserManager) {
		bm.headless = false
	}
}

// NewBrowserManager launches Chrome. Close must be called when the
// BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{headless: true, maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}

	c, err := bm.launch()
	if err != nil {
		return nil, err
	}
	bm.current = c
	return bm, nil
}

// Browser returns the browser to open pages in. Callers report each loaded
// page with IncrementPageCount.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.headless && bm.loaded.Load() >= bm.maxPages {
		bm.replace()
	}
	return bm.current.browser
}

// IncrementPageCount records a loaded page.
func (bm *BrowserManager) IncrementPageCount() {
	bm.loaded.Add(1)
}

// Closed reports whether Close has been called.
func (bm *BrowserManager) Closed() bool {
	return bm.closed.Load()
}

// Close stops the browser. Calling Close again is a no-op.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	err := bm.current.stop()
	bm.current = chrome{}
	return err
}

// LauncherPID returns the process ID of the browser launcher, or 0 once
// closed.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.current.launcher == nil {
		return 0
	}
	return bm.current.launcher.PID()
}

func (bm *BrowserManager) launch() (chrome, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(bm.headless)
	if !bm.headless {
		l = l.Set("no-first-run").Set("no-default-browser-check")
	}

	controlURL, err := l.Launch()
	if err != nil {
		return chrome{}, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return chrome{}, fmt.Errorf("connecting to browser: %w", err)
	}
	return chrome{browser: browser, launcher: l}, nil
}

// replace swaps in a fresh browser, keeping the old one when the launch
// fails. Must be called with mu held.
func (bm *BrowserManager) replace() {
	next, err := bm.launch()
	if err != nil {
		return
	}
	_ = bm.current.stop()
	bm.current = next
	bm.loaded.Store(0)
}
