package goquery

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/readtrack"
	"github.com/fwojciec/readtrack/anchor"
	"golang.org/x/net/html"
)

// Range is a selection running from an offset in one text node to an offset
// in the same or a later text node. Offsets are byte offsets into Data.
type Range struct {
	StartNode   *html.Node
	StartOffset int
	EndNode     *html.Node
	EndOffset   int
}

func (r Range) valid() bool {
	if r.StartNode == nil || r.EndNode == nil {
		return false
	}
	if r.StartNode.Type != html.TextNode || r.EndNode.Type != html.TextNode {
		return false
	}
	if r.StartOffset < 0 || r.StartOffset > len(r.StartNode.Data) {
		return false
	}
	if r.EndOffset < 0 || r.EndOffset > len(r.EndNode.Data) {
		return false
	}
	return r.StartNode != r.EndNode || r.StartOffset <= r.EndOffset
}

// FindRange returns the range covering the first occurrence of text in the
// page, as if the user had selected it.
func (p *Page) FindRange(text string) (Range, bool) {
	m, ok := anchor.Locate(p.source(nil), anchor.Query{Needle: text})
	if !ok {
		return Range{}, false
	}
	return Range{
		StartNode:   m.Node,
		StartOffset: m.Start,
		EndNode:     m.Node,
		EndOffset:   m.End,
	}, true
}

// Selection returns the trimmed text of r with up to
// readtrack.ContextWindow characters of context taken from the text nodes
// the range starts and ends in. An invalid range, including one whose end
// precedes its start in the document, yields an empty Selection.
func (p *Page) Selection(r Range) readtrack.Selection {
	if !r.valid() {
		return readtrack.Selection{}
	}
	r = shrink(r)

	var b strings.Builder
	if r.StartNode == r.EndNode {
		b.WriteString(r.StartNode.Data[r.StartOffset:r.EndOffset])
	} else {
		inside, closed := false, false
		walkText(p.doc.Nodes[0], invisible, func(n *html.Node) bool {
			switch {
			case n == r.StartNode:
				inside = true
				b.WriteString(n.Data[r.StartOffset:])
			case n == r.EndNode:
				if inside {
					b.WriteString(n.Data[:r.EndOffset])
					closed = true
				}
				return false
			case inside:
				b.WriteString(n.Data)
			}
			return true
		})
		// The end node must follow the start node in the page.
		if !closed {
			return readtrack.Selection{}
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return readtrack.Selection{}
	}
	return readtrack.Selection{
		Text:          text,
		ContextBefore: lastRunes(r.StartNode.Data[:r.StartOffset], readtrack.ContextWindow),
		ContextAfter:  firstRunes(r.EndNode.Data[r.EndOffset:], readtrack.ContextWindow),
	}
}

// shrink moves the range boundaries past whitespace inside the start and end
// nodes, so the captured context touches the trimmed text.
func shrink(r Range) Range {
	limit := len(r.StartNode.Data)
	if r.StartNode == r.EndNode {
		limit = r.EndOffset
	}
	for r.StartOffset < limit {
		c, size := utf8.DecodeRuneInString(r.StartNode.Data[r.StartOffset:])
		if !unicode.IsSpace(c) {
			break
		}
		r.StartOffset += size
	}

	floor := 0
	if r.StartNode == r.EndNode {
		floor = r.StartOffset
	}
	for r.EndOffset > floor {
		c, size := utf8.DecodeLastRuneInString(r.EndNode.Data[:r.EndOffset])
		if !unicode.IsSpace(c) {
			break
		}
		r.EndOffset -= size
	}
	return r
}

func lastRunes(s string, n int) string {
	for i := len(s); i > 0; {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
		n--
		if n == 0 {
			return s[i:]
		}
	}
	return s
}

func firstRunes(s string, n int) string {
	i := 0
	for count := 0; i < len(s) && count < n; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}
