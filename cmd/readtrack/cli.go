package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/readtrack"
	"github.com/fwojciec/readtrack/sqlite"
)

// Tab is a browser tab a page is read in.
type Tab interface {
	readtrack.Viewport
	readtrack.Scroller
	readtrack.Renderer
	HTML(ctx context.Context) (string, error)
	Close() error
}

// Crawler reads chapter pages.
type Crawler interface {
	// Titles fills in missing chapter titles.
	Titles(ctx context.Context, chapters []*readtrack.Chapter) error

	// Follow walks next-page links from start.
	Follow(ctx context.Context, start string) ([]readtrack.Link, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdout       io.Writer
	Stderr       io.Writer
	Logger       *slog.Logger
	DB           *sqlite.DB
	Materials    readtrack.MaterialService
	Chapters     readtrack.ChapterService
	Quotes       readtrack.QuoteService
	Progress     readtrack.ProgressService
	Bridge       readtrack.SyncBridge
	Sitemaps     readtrack.SitemapService
	Fetcher      readtrack.Fetcher
	Crawler      Crawler
	Converter    readtrack.Converter
	// Extractors maps a reader-mode name to its extractor.
	Extractors   map[string]readtrack.Extractor
	// NewNoteStore returns a store that exports notes into dir.
	NewNoteStore func(dir string) readtrack.NoteStore
	OpenTab      func(ctx context.Context, url string) (Tab, error)
}

func (d *Dependencies) log() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" help:"Database path (defaults to $READTRACK_DB or ~/.readtrack/readtrack.db)"`
	Verbose bool   `short:"v" help:"Log operations to stderr"`
	Browser bool   `short:"b" help:"Fetch pages with a headless browser for JavaScript-rendered sites"`

	Add      AddCmd      `cmd:"" help:"Add a document or book to read"`
	List     ListCmd     `cmd:"" help:"List all materials"`
	Show     ShowCmd     `cmd:"" help:"Show a material with its chapters and progress"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a material with its chapters and quotes"`
	Quote    QuoteCmd    `cmd:"" help:"Save a quote from a page"`
	Quotes   QuotesCmd   `cmd:"" help:"List the quotes of a material"`
	Unquote  UnquoteCmd  `cmd:"" help:"Delete a quote"`
	Render   RenderCmd   `cmd:"" help:"Print a page with its quotes highlighted"`
	Progress ProgressCmd `cmd:"" help:"Show or set the reading progress of a page"`
	Open     OpenCmd     `cmd:"" help:"Open a page in the browser and track reading"`
	Export   ExportCmd   `cmd:"" help:"Export a material as Markdown notes with highlights"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name    string   `arg:"" help:"Material name"`
	URL     string   `arg:"" help:"Material URL"`
	Chapter []string `short:"c" help:"Chapter URL (repeatable)"`
	Sitemap bool     `short:"s" help:"Discover chapters from the site's sitemap"`
	TOC     bool     `name:"toc" short:"t" help:"Discover chapters from the page's table of contents"`
	Follow  bool     `help:"Discover chapters by following next-page links from the URL"`
	Include []string `short:"i" help:"Keep only discovered chapter URLs matching regex (repeatable)"`
	Exclude []string `short:"x" help:"Drop discovered chapter URLs matching regex (repeatable)"`
	Titles  bool     `help:"Fetch missing chapter titles from the chapter pages"`
	Preview bool     `short:"p" help:"Show chapters without creating the material"`
	Force   bool     `short:"f" help:"Delete existing material first"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Name string `arg:"" help:"Material name"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Material name"`
	Force bool   `help:"Confirm deletion"`
}

// QuoteCmd is the "quote" subcommand.
type QuoteCmd struct {
	Name string `arg:"" help:"Material name"`
	URL  string `arg:"" help:"Page URL"`
	Text string `arg:"" help:"Text to quote, as it appears on the page"`
}

// QuotesCmd is the "quotes" subcommand.
type QuotesCmd struct {
	Name string `arg:"" help:"Material name"`
	URL  string `help:"Only quotes from this page"`
}

// UnquoteCmd is the "unquote" subcommand.
type UnquoteCmd struct {
	ID string `arg:"" help:"Quote ID"`
}

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	URL      string `arg:"" help:"Page URL"`
	Markdown bool   `short:"m" help:"Print Markdown instead of HTML"`
	Extract  string `short:"x" enum:"none,trafilatura,readability" default:"none" help:"Reduce the page to its main content first (none, trafilatura, readability)"`
}

// ProgressCmd is the "progress" subcommand.
type ProgressCmd struct {
	URL     string `arg:"" help:"Page URL"`
	Percent int    `arg:"" optional:"" default:"-1" help:"Percent read (0-100); omit to show"`
	Title   string `help:"Page title to store with the progress"`
}

// OpenCmd is the "open" subcommand.
type OpenCmd struct {
	URL      string        `arg:"" help:"Page URL"`
	Quote    string        `short:"q" help:"Scroll to the quote with this ID"`
	Interval time.Duration `default:"500ms" help:"How often to check the scroll position"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Name    string `arg:"" help:"Material name"`
	Dir     string `arg:"" help:"Output directory (replaced on success)"`
	Extract string `short:"x" enum:"none,trafilatura,readability" default:"none" help:"Reduce pages to their main content first (none, trafilatura, readability)"`
}
