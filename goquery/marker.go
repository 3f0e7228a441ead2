package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Marker attributes. Every marker carries a page-unique sequence number;
// markers for quotes with an ID also carry the quote ID.
const (
	MarkerAttr  = "data-readtrack-mark"
	QuoteIDAttr = "data-quote-id"
	MarkerClass = "readtrack-highlight"
)

// Marker is a highlight element wrapping a matched quote span.
type Marker struct {
	node *html.Node
}

// Seq returns the marker's page-unique sequence number.
func (m *Marker) Seq() string {
	return attr(m.node, MarkerAttr)
}

// QuoteID returns the ID of the quote the marker was created for, if any.
func (m *Marker) QuoteID() string {
	return attr(m.node, QuoteIDAttr)
}

// Text returns the highlighted text.
func (m *Marker) Text() string {
	return goquery.NewDocumentFromNode(m.node).Text()
}

// Selector returns a CSS selector matching only this marker.
func (m *Marker) Selector() string {
	return "[" + MarkerAttr + "=" + strconv.Quote(m.Seq()) + "]"
}

func isMarker(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == MarkerAttr {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// wrap moves text.Data[start:end] into a new marker element placed after
// the remaining prefix. Offsets before start stay valid, so several spans of
// one node can be wrapped by working from the last span to the first.
func wrap(text *html.Node, start, end int, seq int, quoteID string) *html.Node {
	parent := text.Parent
	data := text.Data

	mark := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Mark,
		Data:     "mark",
		Attr: []html.Attribute{
			{Key: "class", Val: MarkerClass},
			{Key: MarkerAttr, Val: strconv.Itoa(seq)},
		},
	}
	if quoteID != "" {
		mark.Attr = append(mark.Attr, html.Attribute{Key: QuoteIDAttr, Val: quoteID})
	}
	mark.AppendChild(&html.Node{Type: html.TextNode, Data: data[start:end]})

	parent.InsertBefore(mark, text.NextSibling)
	if end < len(data) {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: data[end:]}, mark.NextSibling)
	}

	text.Data = data[:start]
	if start == 0 {
		parent.RemoveChild(text)
	}
	return mark
}

// unwrap replaces a marker with its children and merges the text nodes
// around it back together.
func unwrap(mark *html.Node) {
	parent := mark.Parent
	if parent == nil {
		return
	}
	for c := mark.FirstChild; c != nil; {
		next := c.NextSibling
		mark.RemoveChild(c)
		parent.InsertBefore(c, mark)
		c = next
	}
	parent.RemoveChild(mark)
	mergeText(parent)
}

// mergeText joins adjacent text children of n and drops empty ones.
func mergeText(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type != html.TextNode {
			c = next
			continue
		}
		for next != nil && next.Type == html.TextNode {
			c.Data += next.Data
			after := next.NextSibling
			n.RemoveChild(next)
			next = after
		}
		if c.Data == "" {
			n.RemoveChild(c)
		}
		c = next
	}
}

func sameText(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
