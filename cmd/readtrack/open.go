package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/readtrack"
	"github.com/fwojciec/readtrack/goquery"
	"github.com/fwojciec/readtrack/reader"
)

const defaultOpenInterval = 500 * time.Millisecond

// Run executes the open command.
func (c *OpenCmd) Run(deps *Dependencies) error {
	tab, err := deps.OpenTab(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error opening %s: %v\n", c.URL, err)
		return err
	}
	defer tab.Close()

	html, err := tab.HTML(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	page, err := goquery.NewPage(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	r := reader.New(c.URL, page, deps.Bridge,
		reader.WithViewport(tab),
		reader.WithScroller(tab),
		reader.WithRenderer(tab),
	)
	if _, err := r.RefreshHighlights(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if err := c.position(deps, r); err != nil {
		return err
	}

	title := r.Title()
	if title == "" {
		title = r.URL()
	}
	fmt.Fprintf(deps.Stdout, "Reading %s. Close the tab or press Ctrl+C to stop.\n", title)

	return c.track(deps, r)
}

// position scrolls to the requested quote, or to the stored progress when
// no quote was named.
func (c *OpenCmd) position(deps *Dependencies, r *reader.Reader) error {
	if c.Quote != "" {
		q, err := deps.Quotes.FindQuoteByID(deps.Ctx, c.Quote)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
			return err
		}
		found, err := r.ScrollToQuote(deps.Ctx, q)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		if !found {
			fmt.Fprintf(deps.Stderr, "warning: quote %s not found on page\n", q.ID)
		}
		return nil
	}

	p, err := deps.Progress.FindProgress(deps.Ctx, r.URL())
	if readtrack.ErrorCode(err) == readtrack.ENOTFOUND {
		return nil
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
		return err
	}
	if err := r.ScrollToProgress(deps.Ctx, p.Percent); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}

// track polls the scroll position and feeds changes to the reader until the
// context ends or the tab goes away. The last position seen is reported on
// the way out so a pending debounced report is not lost.
func (c *OpenCmd) track(deps *Dependencies, r *reader.Reader) error {
	interval := c.Interval
	if interval <= 0 {
		interval = defaultOpenInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := -1
	defer func() {
		if last < 0 {
			return
		}
		ctx := context.WithoutCancel(deps.Ctx)
		_ = deps.Bridge.ReportProgress(ctx, r.URL(), last, r.Title())
	}()

	for {
		select {
		case <-deps.Ctx.Done():
			return nil
		case <-ticker.C:
		}

		percent, err := r.Progress(deps.Ctx)
		if err != nil {
			deps.log().Info("tab closed", "url", r.URL(), "err", err)
			return nil
		}
		if percent != last {
			last = percent
			r.OnScroll(deps.Ctx)
		}
	}
}
