package main

import (
	"fmt"

	"github.com/fwojciec/readtrack"
)

// Run executes the progress command.
func (c *ProgressCmd) Run(deps *Dependencies) error {
	if c.Percent >= 0 {
		p := &readtrack.Progress{URL: c.URL, Percent: c.Percent, Title: c.Title}
		if err := deps.Progress.ReportProgress(deps.Ctx, p); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Progress for %s set to %d%%\n", p.URL, p.Percent)
		return nil
	}

	p, err := deps.Progress.FindProgress(deps.Ctx, c.URL)
	if readtrack.ErrorCode(err) == readtrack.ENOTFOUND {
		fmt.Fprintf(deps.Stdout, "No progress recorded for %s\n", c.URL)
		return nil
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
		return err
	}

	if p.Title != "" {
		fmt.Fprintf(deps.Stdout, "%d%%  %s  %s\n", p.Percent, p.Title, p.URL)
	} else {
		fmt.Fprintf(deps.Stdout, "%d%%  %s\n", p.Percent, p.URL)
	}
	return nil
}
