package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/readtrack"
	"github.com/fwojciec/readtrack/bluemonday"
	"github.com/fwojciec/readtrack/bridge"
	"github.com/fwojciec/readtrack/fetch"
	"github.com/fwojciec/readtrack/fs"
	"github.com/fwojciec/readtrack/htmltomarkdown"
	rthttp "github.com/fwojciec/readtrack/http"
	"github.com/fwojciec/readtrack/readability"
	"github.com/fwojciec/readtrack/rod"
	rtslog "github.com/fwojciec/readtrack/slog"
	"github.com/fwojciec/readtrack/sqlite"
	"github.com/fwojciec/readtrack/trafilatura"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// READTRACK_DB may come from a .env file in the working directory.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	MaterialService readtrack.MaterialService
	ChapterService  readtrack.ChapterService
	QuoteService    readtrack.QuoteService
	ProgressService readtrack.ProgressService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("readtrack"),
		kong.Description("Track reading progress and highlights across web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'readtrack --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	command := kongCtx.Selected().Name

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}
	deps.Logger = logger

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set READTRACK_DB or --db to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.MaterialService = sqlite.NewMaterialService(m.DB)
	m.ChapterService = sqlite.NewChapterService(m.DB)
	m.QuoteService = sqlite.NewQuoteService(m.DB)
	m.ProgressService = sqlite.NewProgressService(m.DB)
	deps.DB = m.DB
	deps.Materials = m.MaterialService
	deps.Chapters = m.ChapterService
	deps.Quotes = m.QuoteService
	deps.Progress = m.ProgressService
	deps.Bridge = rtslog.NewLoggingBridge(bridge.NewStore(m.QuoteService, m.ProgressService), logger)
	deps.Sitemaps = rtslog.NewLoggingSitemapService(rthttp.NewSitemapService(nil), logger)
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Extractors = map[string]readtrack.Extractor{
		"trafilatura": bluemonday.NewExtractor(trafilatura.NewExtractor()),
		"readability": bluemonday.NewExtractor(readability.NewExtractor()),
	}
	deps.NewNoteStore = func(dir string) readtrack.NoteStore {
		dir = filepath.Clean(dir)
		return fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir))
	}

	switch command {
	case "add", "quote", "render", "export":
		fetcher, err := newFetcher(cli.Browser, stderr)
		if err != nil {
			return err
		}
		cache, err := fetch.NewCache(rod.NewLoggingFetcher(fetcher, logger), fetch.DefaultCacheSize)
		if err != nil {
			fetcher.Close()
			return err
		}
		defer cache.Close()

		deps.Fetcher = cache
		deps.Crawler = fetch.NewCrawler(deps.Fetcher, fetch.WithLogger(logger))
	case "open":
		manager, err := rod.NewBrowserManager(rod.WithHeadful())
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer manager.Close()

		deps.OpenTab = func(ctx context.Context, url string) (Tab, error) {
			page, err := rod.OpenPage(ctx, manager, url)
			if err != nil {
				return nil, err
			}
			return rod.NewLoggingPage(page, logger), nil
		}
	}

	return kongCtx.Run(deps)
}

func newFetcher(browser bool, stderr io.Writer) (readtrack.Fetcher, error) {
	if !browser {
		return rthttp.NewFetcher(), nil
	}
	fetcher, err := rod.NewFetcher()
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return fetcher, nil
}

func defaultDBPath() string {
	if path := os.Getenv("READTRACK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "readtrack.db"
	}
	dir := filepath.Join(home, ".readtrack")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "readtrack.db")
}
