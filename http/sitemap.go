package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/readtrack"
)

// Ensure SitemapService implements readtrack.SitemapService.
var _ readtrack.SitemapService = (*SitemapService)(nil)

// MaxSitemaps bounds the sitemap documents read for one discovery, counting
// those reached through sitemap indexes.
const MaxSitemaps = 50

// SitemapService discovers the chapters of a material from the sitemap of
// the site hosting it.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs returns the normalized sitemap URLs under baseURL's path in
// sitemap order, without duplicates. A base of https://example.com/book
// matches /book and /book/... but not /bookshelf.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *readtrack.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, readtrack.Errorf(readtrack.EINVALID, "invalid base URL: %s", baseURL)
	}

	roots, err := s.locate(ctx, base)
	if err != nil {
		return nil, err
	}

	w := &walk{
		svc:     s,
		visited: make(map[string]bool),
		seen:    make(map[string]bool),
		prefix:  strings.TrimSuffix(base.Path, "/"),
		filter:  filter,
		urls:    []string{},
	}
	for _, root := range roots {
		if err := w.sitemap(ctx, root); err != nil {
			return nil, err
		}
	}
	return w.urls, nil
}

// locate returns the sitemaps declared in robots.txt, or /sitemap.xml if it
// exists. No sitemap yields nil without error.
func (s *SitemapService) locate(ctx context.Context, base *url.URL) ([]string, error) {
	robots := base.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if sitemaps, err := s.robotsSitemaps(ctx, robots); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	fallback := base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	ok, err := s.exists(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return []string{fallback}, nil
}

// robotsSitemaps reads the Sitemap: directives of a robots.txt file.
func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	const directive = "sitemap:"
	var sitemaps []string
	sc := bufio.NewScanner(body)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if len(line) <= len(directive) || !strings.EqualFold(line[:len(directive)], directive) {
			continue
		}
		if loc := strings.TrimSpace(line[len(directive):]); loc != "" {
			sitemaps = append(sitemaps, loc)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

// walk collects URLs across a tree of sitemaps.
type walk struct {
	svc     *SitemapService
	visited map[string]bool
	seen    map[string]bool
	prefix  string
	filter  *readtrack.URLFilter
	urls    []string
}

func (w *walk) sitemap(ctx context.Context, loc string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.visited[loc] || len(w.visited) >= MaxSitemaps {
		return nil
	}
	w.visited[loc] = true

	body, err := w.svc.get(ctx, loc)
	if err != nil {
		return err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("empty sitemap XML: %s", loc)
	}

	if root.Tag == "sitemapindex" {
		for _, child := range locs(root, "sitemap") {
			if err := w.sitemap(ctx, child); err != nil {
				return err
			}
		}
		return nil
	}

	for _, page := range locs(root, "url") {
		w.add(page)
	}
	return nil
}

func (w *walk) add(raw string) {
	u := readtrack.NormalizeURL(raw)
	if u == "" || w.seen[u] || !w.filter.Match(u) {
		return
	}
	if w.prefix != "" {
		parsed, err := url.Parse(u)
		if err != nil {
			return
		}
		if parsed.Path != w.prefix && !strings.HasPrefix(parsed.Path, w.prefix+"/") {
			return
		}
	}
	w.seen[u] = true
	w.urls = append(w.urls, u)
}

// locs returns the trimmed <loc> text of each child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if text := strings.TrimSpace(loc.Text()); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// get returns the body of a 200 response.
func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

// exists reports whether target answers a HEAD request with 200.
func (s *SitemapService) exists(ctx context.Context, target string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
