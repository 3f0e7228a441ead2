package main

import (
	"fmt"

	"github.com/fwojciec/readtrack"
	"github.com/fwojciec/readtrack/goquery"
	"github.com/fwojciec/readtrack/reader"
)

// Run executes the render command.
func (c *RenderCmd) Run(deps *Dependencies) error {
	page, err := loadPage(deps, c.URL, c.Extract)
	if err != nil {
		return err
	}

	r := reader.New(c.URL, page, deps.Bridge)
	if _, err := r.RefreshHighlights(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	out, err := r.HTML()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if c.Markdown {
		out, err = deps.Converter.Convert(out)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintln(deps.Stdout, out)
	return nil
}

// loadPage fetches rawURL and parses it into a page, reducing it to its main
// content first unless mode is empty or "none".
func loadPage(deps *Dependencies, rawURL, mode string) (*goquery.Page, error) {
	html, err := deps.Fetcher.Fetch(deps.Ctx, rawURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error fetching %s: %v\n", rawURL, err)
		return nil, err
	}

	if mode != "" && mode != "none" {
		extractor, ok := deps.Extractors[mode]
		if !ok {
			err := readtrack.Errorf(readtrack.EINVALID, "unknown extractor %q", mode)
			fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
			return nil, err
		}
		article, err := extractor.Extract(html)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error extracting %s: %s\n", rawURL, readtrack.ErrorMessage(err))
			return nil, err
		}
		html = article.HTML()
	}

	page, err := goquery.NewPage(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return nil, err
	}
	return page, nil
}
