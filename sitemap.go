package readtrack

import (
	"context"
	"regexp"
)

// Link is a hyperlink discovered while looking for the chapters of a
// material.
type Link struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// SitemapService discovers page URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs returns the sitemap URLs under baseURL's path.
	// Sitemaps are located via robots.txt, falling back to /sitemap.xml,
	// and sitemap indexes are followed. Returns an empty slice when the
	// site has no sitemap.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter includes or excludes URLs by pattern.
type URLFilter struct {
	// Include keeps only URLs matching at least one pattern when non-empty.
	Include []*regexp.Regexp

	// Exclude drops URLs matching any pattern. Applied after Include.
	Exclude []*regexp.Regexp
}

// Match reports whether url passes the filter. A nil filter passes
// everything.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	if len(f.Include) > 0 && !matchAny(f.Include, url) {
		return false
	}
	return !matchAny(f.Exclude, url)
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
