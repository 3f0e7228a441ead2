package main

import (
	"fmt"

	"github.com/fwojciec/readtrack"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	material, err := findMaterial(deps, c.Name)
	if err != nil {
		return err
	}

	chapters, err := deps.Chapters.FindChapters(deps.Ctx, readtrack.ChapterFilter{MaterialID: &material.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
		return err
	}

	quotes, err := deps.Quotes.FindQuotes(deps.Ctx, readtrack.QuoteFilter{MaterialID: &material.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s (%s)\n", material.Name, material.Kind)
	fmt.Fprintf(deps.Stdout, "  %s\n", material.SourceURL)

	if len(chapters) == 0 {
		percent, err := c.percent(deps, material.SourceURL)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "  Progress: %s\n", percent)
	} else {
		fmt.Fprintf(deps.Stdout, "\nChapters (%d total):\n\n", len(chapters))
		for i, ch := range chapters {
			title := ch.Title
			if title == "" {
				title = ch.URL
			}
			percent, err := c.percent(deps, ch.URL)
			if err != nil {
				return err
			}
			fmt.Fprintf(deps.Stdout, "  %d. %s [%s]\n     %s\n", i+1, title, percent, ch.URL)
		}
	}

	fmt.Fprintf(deps.Stdout, "\nQuotes: %d\n", len(quotes))
	return nil
}

// percent formats the stored progress of url, or "-" when there is none.
func (c *ShowCmd) percent(deps *Dependencies, url string) (string, error) {
	p, err := deps.Progress.FindProgress(deps.Ctx, url)
	if readtrack.ErrorCode(err) == readtrack.ENOTFOUND {
		return "-", nil
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
		return "", err
	}
	return fmt.Sprintf("%d%%", p.Percent), nil
}
