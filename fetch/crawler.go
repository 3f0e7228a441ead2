package fetch

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/readtrack"
	"github.com/fwojciec/readtrack/goquery"
	"golang.org/x/sync/errgroup"
)

// Defaults for a Crawler.
const (
	DefaultConcurrency       = 4
	DefaultRequestsPerSecond = 2
	DefaultMaxPages          = 500
)

// seenFalsePositiveRate sizes the filter that detects next-link cycles.
const seenFalsePositiveRate = 1e-6

// Crawler reads chapter pages: it fills in chapter titles and follows
// next-page links through a book.
type Crawler struct {
	fetcher     readtrack.Fetcher
	limiter     *DomainLimiter
	concurrency int
	maxPages    int
	delays      []time.Duration
	logger      *slog.Logger
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithConcurrency sets how many pages are fetched at once.
// Defaults to DefaultConcurrency if not specified.
func WithConcurrency(n int) Option {
	return func(c *Crawler) {
		c.concurrency = n
	}
}

// WithMaxPages bounds how many pages Follow visits.
// Defaults to DefaultMaxPages if not specified.
func WithMaxPages(n int) Option {
	return func(c *Crawler) {
		c.maxPages = n
	}
}

// WithLimiter replaces the per-host rate limiter.
// Defaults to DefaultRequestsPerSecond per host if not specified.
func WithLimiter(l *DomainLimiter) Option {
	return func(c *Crawler) {
		c.limiter = l
	}
}

// WithRetryDelays sets the backoff between attempts.
// Defaults to DefaultRetryDelays if not specified.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *Crawler) {
		c.delays = delays
	}
}

// WithLogger sets the logger for retries and failed pages.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// NewCrawler creates a Crawler reading pages through fetcher.
func NewCrawler(fetcher readtrack.Fetcher, opts ...Option) *Crawler {
	c := &Crawler{
		fetcher:     fetcher,
		limiter:     NewDomainLimiter(DefaultRequestsPerSecond),
		concurrency: DefaultConcurrency,
		maxPages:    DefaultMaxPages,
		delays:      DefaultRetryDelays(),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Titles sets the Title of every chapter that has none. A page that cannot
// be fetched or has no title leaves its chapter untitled; only cancellation
// of ctx is returned as an error.
func (c *Crawler) Titles(ctx context.Context, chapters []*readtrack.Chapter) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for _, ch := range chapters {
		if ch.Title != "" {
			continue
		}
		g.Go(func() error {
			page, err := c.page(gctx, ch.URL)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				c.logger.Warn("chapter title", "url", ch.URL, "err", err)
				return nil
			}
			ch.Title = page.Title()
			return nil
		})
	}

	return g.Wait()
}

// Follow walks a book from its first chapter by following next-page links,
// returning one titled link per page in reading order. The walk ends at a
// page without a next link, at a page already visited, or after the
// configured page limit. Failing to fetch the first page is an error; a
// later failure ends the walk with the chapters found so far.
func (c *Crawler) Follow(ctx context.Context, start string) ([]readtrack.Link, error) {
	current := readtrack.NormalizeURL(start)
	if current == "" {
		return nil, readtrack.Errorf(readtrack.EINVALID, "invalid URL %q", start)
	}

	seen := bloom.NewWithEstimates(uint(max(c.maxPages, 1)), seenFalsePositiveRate)
	links := []readtrack.Link{}

	for len(links) < c.maxPages {
		seen.AddString(current)

		html, err := c.fetch(ctx, current)
		if err != nil {
			if len(links) == 0 || ctx.Err() != nil {
				return nil, err
			}
			c.logger.Warn("follow", "url", current, "err", err)
			break
		}
		page, err := goquery.NewPage(html)
		if err != nil {
			return nil, err
		}
		links = append(links, readtrack.Link{URL: current, Title: page.Title()})

		next, ok := goquery.NextLink(html, current)
		if !ok || seen.TestString(next.URL) {
			break
		}
		current = next.URL
	}

	return links, nil
}

func (c *Crawler) page(ctx context.Context, rawURL string) (*goquery.Page, error) {
	html, err := c.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return goquery.NewPage(html)
}

// fetch waits for the host's rate limit and fetches rawURL with retries.
func (c *Crawler) fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", readtrack.Errorf(readtrack.EINVALID, "invalid URL %q", rawURL)
	}
	if err := c.limiter.Wait(ctx, u.Host); err != nil {
		return "", err
	}
	return Retry(ctx, rawURL, c.fetcher.Fetch, c.delays, c.logger)
}
