package goquery

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/readtrack"
)

// contentsSelectors match links in the containers sites use for a table of
// contents, in order of preference.
var contentsSelectors = []string{
	".toc a[href]",
	".table-of-contents a[href]",
	"nav a[href]",
	`[role="navigation"] a[href]`,
	"aside a[href]",
}

// TableOfContents returns the chapter links of a book's index page in
// document order. Links must stay on the host and under the directory of
// baseURL. Links inside a table of contents, navigation or sidebar are
// preferred; when there are none every link on the page is considered.
// The page itself is never included and URLs are normalized.
func TableOfContents(html, baseURL string, filter *readtrack.URLFilter) ([]readtrack.Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, readtrack.Errorf(readtrack.EINVALID, "invalid base URL: %s", baseURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, readtrack.Errorf(readtrack.EINVALID, "failed to parse HTML: %v", err)
	}

	c := &contents{
		base:   base,
		self:   readtrack.NormalizeURL(baseURL),
		prefix: dirPrefix(base.Path),
		filter: filter,
		seen:   make(map[string]bool),
	}
	for _, sel := range contentsSelectors {
		doc.Find(sel).Each(c.add)
	}
	if len(c.links) == 0 {
		doc.Find("a[href]").Each(c.add)
	}
	return c.links, nil
}

type contents struct {
	base   *url.URL
	self   string
	prefix string
	filter *readtrack.URLFilter
	seen   map[string]bool
	links  []readtrack.Link
}

func (c *contents) add(_ int, sel *goquery.Selection) {
	href, _ := sel.Attr("href")
	if isNonHTTPLink(href) {
		return
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return
	}
	resolved := c.base.ResolveReference(ref)
	if resolved.Host != c.base.Host || !strings.HasPrefix(resolved.Path, c.prefix) {
		return
	}

	u := readtrack.NormalizeURL(resolved.String())
	if u == "" || u == c.self || c.seen[u] || !c.filter.Match(u) {
		return
	}
	c.seen[u] = true
	c.links = append(c.links, readtrack.Link{
		URL:   u,
		Title: strings.Join(strings.Fields(sel.Text()), " "),
	})
}

// dirPrefix returns the directory of p with a trailing slash. A last
// segment without an extension is taken to be a directory.
func dirPrefix(p string) string {
	if p == "" || strings.HasSuffix(p, "/") {
		return p
	}
	if !strings.Contains(path.Base(p), ".") {
		return p + "/"
	}
	return strings.TrimSuffix(path.Dir(p), "/") + "/"
}

// isNonHTTPLink reports whether href uses a scheme that is never a chapter.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return href == "" ||
		strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
