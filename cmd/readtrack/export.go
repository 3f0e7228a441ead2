package main

import (
	"fmt"

	"github.com/fwojciec/readtrack"
	"github.com/fwojciec/readtrack/reader"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	material, err := findMaterial(deps, c.Name)
	if err != nil {
		return err
	}

	chapters, err := deps.Chapters.FindChapters(deps.Ctx, readtrack.ChapterFilter{MaterialID: &material.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
		return err
	}
	if len(chapters) == 0 {
		chapters = []*readtrack.Chapter{{MaterialID: material.ID, URL: material.SourceURL}}
	}

	store := deps.NewNoteStore(c.Dir)
	for i, ch := range chapters {
		note, err := c.note(deps, material, ch)
		if err != nil {
			_ = store.Abort()
			return err
		}
		if err := store.Save(deps.Ctx, note); err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error saving %s: %v\n", ch.URL, err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "[%d/%d] %s\n", i+1, len(chapters), ch.URL)
	}

	if err := store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error committing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d pages to %s\n", len(chapters), c.Dir)
	return nil
}

// note renders one page of material as Markdown with its quotes highlighted.
func (c *ExportCmd) note(deps *Dependencies, material *readtrack.Material, ch *readtrack.Chapter) (*readtrack.Note, error) {
	page, err := loadPage(deps, ch.URL, c.Extract)
	if err != nil {
		return nil, err
	}

	r := reader.New(ch.URL, page, deps.Bridge)
	if _, err := r.RefreshHighlights(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return nil, err
	}
	html, err := r.HTML()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return nil, err
	}
	markdown, err := deps.Converter.Convert(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error converting %s: %s\n", ch.URL, readtrack.ErrorMessage(err))
		return nil, err
	}

	url := ch.URL
	quotes, err := deps.Quotes.FindQuotes(deps.Ctx, readtrack.QuoteFilter{MaterialID: &material.ID, URL: &url})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
		return nil, err
	}

	note := &readtrack.Note{
		URL:      ch.URL,
		Title:    ch.Title,
		Percent:  -1,
		Quotes:   quotes,
		Markdown: markdown,
	}
	if note.Title == "" {
		note.Title = page.Title()
	}

	p, err := deps.Progress.FindProgress(deps.Ctx, ch.URL)
	switch {
	case err == nil:
		note.Percent = p.Percent
	case readtrack.ErrorCode(err) != readtrack.ENOTFOUND:
		fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
		return nil, err
	}

	return note, nil
}
