package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/readtrack"
	"github.com/fwojciec/readtrack/goquery"
)

// Run executes the quote command.
func (c *QuoteCmd) Run(deps *Dependencies) error {
	pageURL := readtrack.NormalizeURL(c.URL)
	if pageURL == "" {
		fmt.Fprintf(deps.Stderr, "error: invalid URL %q\n", c.URL)
		return readtrack.Errorf(readtrack.EINVALID, "invalid URL %q", c.URL)
	}

	material, err := findMaterial(deps, c.Name)
	if err != nil {
		return err
	}

	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error fetching %s: %v\n", c.URL, err)
		return err
	}

	page, err := goquery.NewPage(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	rng, ok := page.FindRange(c.Text)
	if !ok {
		fmt.Fprintf(deps.Stderr, "error: text not found on %s\n", c.URL)
		return readtrack.Errorf(readtrack.ENOTFOUND, "text not found on %s", c.URL)
	}
	sel := page.Selection(rng)

	quote := &readtrack.Quote{
		MaterialID:    material.ID,
		Text:          sel.Text,
		ContextBefore: sel.ContextBefore,
		ContextAfter:  sel.ContextAfter,
		URL:           pageURL,
	}
	if err := deps.Quotes.CreateQuote(deps.Ctx, quote); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved quote %s\n", quote.ID)
	return nil
}

// Run executes the quotes command.
func (c *QuotesCmd) Run(deps *Dependencies) error {
	material, err := findMaterial(deps, c.Name)
	if err != nil {
		return err
	}

	filter := readtrack.QuoteFilter{MaterialID: &material.ID}
	if c.URL != "" {
		filter.URL = &c.URL
	}
	quotes, err := deps.Quotes.FindQuotes(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
		return err
	}

	if len(quotes) == 0 {
		fmt.Fprintf(deps.Stdout, "No quotes for %s. Use 'readtrack quote' to save one.\n", material.Name)
		return nil
	}

	for _, q := range quotes {
		saved := time.UnixMilli(q.Timestamp).UTC().Format(time.DateTime)
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n  %q\n", q.ID, saved, q.URL, q.Text)
	}

	return nil
}

// Run executes the unquote command.
func (c *UnquoteCmd) Run(deps *Dependencies) error {
	if err := deps.Quotes.DeleteQuote(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted quote %s\n", c.ID)
	return nil
}
