package main

import (
	"fmt"
	"regexp"

	"github.com/fwojciec/readtrack"
	"github.com/fwojciec/readtrack/goquery"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	sourceURL := readtrack.NormalizeURL(c.URL)
	if sourceURL == "" {
		fmt.Fprintf(deps.Stderr, "error: invalid URL %q\n", c.URL)
		return readtrack.Errorf(readtrack.EINVALID, "invalid URL %q", c.URL)
	}

	filter, err := c.filter()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	links, err := c.chapters(deps, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
		return err
	}

	chapters := make([]*readtrack.Chapter, len(links))
	for i, link := range links {
		chapters[i] = &readtrack.Chapter{URL: link.URL, Title: link.Title, Position: i}
	}

	if c.Titles && deps.Crawler != nil && len(chapters) > 0 {
		if err := deps.Crawler.Titles(deps.Ctx, chapters); err != nil {
			fmt.Fprintf(deps.Stderr, "error fetching titles: %v\n", err)
			return err
		}
	}

	if c.Preview {
		for _, ch := range chapters {
			if ch.Title != "" {
				fmt.Fprintf(deps.Stdout, "%s  %s\n", ch.URL, ch.Title)
				continue
			}
			fmt.Fprintln(deps.Stdout, ch.URL)
		}
		return nil
	}

	if c.Force {
		existing, err := deps.Materials.FindMaterials(deps.Ctx, readtrack.MaterialFilter{Name: &c.Name})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
			return err
		}
		if len(existing) > 0 {
			if err := deps.Materials.DeleteMaterial(deps.Ctx, existing[0].ID); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
				return err
			}
		}
	}

	material := &readtrack.Material{
		Name:      c.Name,
		Kind:      readtrack.KindSingle,
		SourceURL: sourceURL,
	}
	if len(chapters) > 0 {
		material.Kind = readtrack.KindBook
	}

	if err := deps.Materials.CreateMaterial(deps.Ctx, material); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added %s %q (%s)\n", material.Kind, material.Name, material.ID)

	for _, ch := range chapters {
		ch.MaterialID = material.ID
		if err := deps.Chapters.CreateChapter(deps.Ctx, ch); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
			return err
		}
	}
	if len(chapters) > 0 {
		fmt.Fprintf(deps.Stdout, "  Added %d chapters\n", len(chapters))
	}

	return nil
}

func (c *AddCmd) filter() (*readtrack.URLFilter, error) {
	if len(c.Include) == 0 && len(c.Exclude) == 0 {
		return nil, nil
	}
	filter := &readtrack.URLFilter{}
	for _, pattern := range c.Include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, pattern := range c.Exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}

// chapters collects the chapter links named on the command line followed by
// the discovered ones, in order and without duplicates.
func (c *AddCmd) chapters(deps *Dependencies, filter *readtrack.URLFilter) ([]readtrack.Link, error) {
	var links []readtrack.Link
	seen := make(map[string]bool)
	add := func(link readtrack.Link) {
		link.URL = readtrack.NormalizeURL(link.URL)
		if link.URL == "" || seen[link.URL] {
			return
		}
		seen[link.URL] = true
		links = append(links, link)
	}

	for _, u := range c.Chapter {
		if readtrack.NormalizeURL(u) == "" {
			return nil, readtrack.Errorf(readtrack.EINVALID, "invalid chapter URL %q", u)
		}
		add(readtrack.Link{URL: u})
	}

	if c.TOC {
		html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
		if err != nil {
			return nil, err
		}
		found, err := goquery.TableOfContents(html, c.URL, filter)
		if err != nil {
			return nil, err
		}
		for _, link := range found {
			add(link)
		}
	}

	if c.Follow {
		found, err := deps.Crawler.Follow(deps.Ctx, c.URL)
		if err != nil {
			return nil, err
		}
		for _, link := range found {
			if filter.Match(link.URL) {
				add(link)
			}
		}
	}

	if c.Sitemap {
		urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, filter)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			add(readtrack.Link{URL: u})
		}
	}

	return links, nil
}
