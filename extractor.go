package readtrack

import "html"

// Article is the main content of a page with navigation, footers, sidebars
// and other boilerplate removed.
type Article struct {
	// Title comes from page metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	ContentHTML string
}

// HTML returns the article as a standalone document, so it can be read and
// highlighted like the page it came from.
func (a *Article) HTML() string {
	return "<html><head><title>" + html.EscapeString(a.Title) + "</title></head><body>" +
		a.ContentHTML + "</body></html>"
}

// Extractor extracts the main content of a page for reader mode.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*Article, error)
}
