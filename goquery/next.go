package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/readtrack"
)

// nextSelectors locate the link to the following page, most explicit first.
var nextSelectors = []string{
	`link[rel~="next"]`,
	`a[rel~="next"]`,
	`a.next`,
	`.next > a`,
	`.nav-next a`,
	`a[aria-label="Next"]`,
}

// NextLink returns the link to the page that follows the page at baseURL,
// as declared by rel="next" or a conventional "next" navigation link. The
// target must be on the same host and differ from the page itself.
func NextLink(html, baseURL string) (readtrack.Link, bool) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return readtrack.Link{}, false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return readtrack.Link{}, false
	}
	self := readtrack.NormalizeURL(baseURL)

	for _, sel := range nextSelectors {
		var link readtrack.Link
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, _ := s.Attr("href")
			if isNonHTTPLink(href) {
				return true
			}
			ref, err := url.Parse(strings.TrimSpace(href))
			if err != nil {
				return true
			}
			resolved := base.ResolveReference(ref)
			if resolved.Host != base.Host {
				return true
			}
			u := readtrack.NormalizeURL(resolved.String())
			if u == "" || u == self {
				return true
			}
			link = readtrack.Link{URL: u, Title: strings.Join(strings.Fields(s.Text()), " ")}
			return false
		})
		if link.URL != "" {
			return link, true
		}
	}
	return readtrack.Link{}, false
}
