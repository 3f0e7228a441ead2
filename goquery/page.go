// Package goquery implements highlight reconstruction over parsed HTML pages
// using goquery and golang.org/x/net/html.
package goquery

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/readtrack"
	"github.com/fwojciec/readtrack/anchor"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Page is a parsed HTML page. A Page is not safe for concurrent use.
type Page struct {
	doc *goquery.Document
}

// NewPage parses an HTML string into a Page.
func NewPage(s string) (*Page, error) {
	return ParsePage(strings.NewReader(s))
}

// ParsePage parses HTML read from r into a Page.
func ParsePage(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, readtrack.Errorf(readtrack.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Page{doc: doc}, nil
}

// Title returns the page title from <title>, falling back to the first <h1>.
func (p *Page) Title() string {
	if title := strings.TrimSpace(p.doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.Join(strings.Fields(p.doc.Find("h1").First().Text()), " ")
}

// HTML renders the page, including any highlight markers.
func (p *Page) HTML() (string, error) {
	var buf bytes.Buffer
	for _, n := range p.doc.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// body returns the node text is collected from: <body> when present,
// otherwise the document root.
func (p *Page) body() *html.Node {
	if body := p.doc.Find("body"); body.Length() > 0 {
		return body.Nodes[0]
	}
	return p.doc.Nodes[0]
}

// skippedAtoms lists elements whose text is never a quote target.
var skippedAtoms = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Textarea: true,
	atom.Input:    true,
	atom.Select:   true,
	atom.Option:   true,
	atom.Button:   true,
}

// skipped reports whether n is excluded from quote matching.
func skipped(n *html.Node) bool {
	return invisible(n) || isMarker(n)
}

func invisible(n *html.Node) bool {
	return n.Type == html.ElementNode && skippedAtoms[n.DataAtom]
}

// span is a claimed byte range inside a text node.
type span struct {
	start, end int
}

// claimSet records the spans matched so far during a highlight pass, so
// later quotes cannot match inside or across them.
type claimSet map[*html.Node][]span

func (c claimSet) add(n *html.Node, start, end int) {
	c[n] = append(c[n], span{start, end})
}

// claimMask replaces claimed bytes. No text node contains it, so nothing
// matches inside or across a claimed span, and context comparison stops at
// the span's edge.
const claimMask = '\x00'

// text returns the data of n with its claimed spans masked. Byte offsets
// into the result are offsets into n.Data.
func (c claimSet) text(n *html.Node) string {
	spans := c[n]
	if len(spans) == 0 {
		return n.Data
	}
	b := []byte(n.Data)
	for _, s := range spans {
		for i := s.start; i < s.end; i++ {
			b[i] = claimMask
		}
	}
	return string(b)
}

// source returns the text nodes under the page body in document order,
// skipping script, style, form controls and existing markers. Each text node
// is visited once, with the spans already claimed in claims masked out.
func (p *Page) source(claims claimSet) anchor.Source[*html.Node] {
	root := p.body()
	return anchor.SourceFunc[*html.Node](func(visit func(*html.Node, string) bool) {
		walkText(root, skipped, func(n *html.Node) bool {
			return visit(n, claims.text(n))
		})
	})
}

// walkText calls fn for every text node below n that is not inside an
// element for which skip returns true. It stops when fn returns false and
// reports whether the walk ran to completion.
func walkText(n *html.Node, skip func(*html.Node) bool, fn func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			if !fn(c) {
				return false
			}
		case skip(c):
		default:
			if !walkText(c, skip, fn) {
				return false
			}
		}
	}
	return true
}
