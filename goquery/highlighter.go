package goquery

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/readtrack"
	"github.com/fwojciec/readtrack/anchor"
	"golang.org/x/net/html"
)

// MaxQuotesPerPage bounds the number of quotes highlighted on one page.
const MaxQuotesPerPage = 50

// Highlighter keeps the markers of a Page in sync with the quote set saved
// for it. A Highlighter is not safe for concurrent use.
type Highlighter struct {
	page     *Page
	scroller readtrack.Scroller
	seq      int

	// Last successful refresh.
	applied   bool
	url       string
	signature string
}

// NewHighlighter returns a Highlighter for page. The scroller may be nil, in
// which case ScrollToQuote only resolves markers.
func NewHighlighter(page *Page, scroller readtrack.Scroller) *Highlighter {
	return &Highlighter{page: page, scroller: scroller}
}

// plannedMark is a match found during the read-only pass of Apply.
type plannedMark struct {
	node       *html.Node
	start, end int
	quoteID    string
}

// Apply replaces all markers with markers for quotes. Quotes shorter than
// anchor.MinNeedleLen are dropped, the rest are matched longest first and at
// most MaxQuotesPerPage are attempted. Quotes that cannot be found are
// skipped. Apply returns the number of markers created.
func (h *Highlighter) Apply(quotes []*readtrack.Quote) int {
	h.applied = false
	return h.apply(quotes)
}

func (h *Highlighter) apply(quotes []*readtrack.Quote) int {
	h.clear()
	h.seq = 0

	// Locate everything before touching the tree. Claimed spans are hidden
	// from later (shorter) quotes.
	claims := claimSet{}
	var planned []plannedMark
	for _, q := range candidates(quotes) {
		m, ok := anchor.Locate(h.page.source(claims), anchor.Query{
			Needle:        q.Text,
			ContextBefore: q.ContextBefore,
			ContextAfter:  q.ContextAfter,
		})
		if !ok {
			continue
		}
		claims.add(m.Node, m.Start, m.End)
		planned = append(planned, plannedMark{node: m.Node, start: m.Start, end: m.End, quoteID: q.ID})
	}

	// Wrap spans of the same node from last to first so earlier offsets hold.
	byNode := make(map[*html.Node][]plannedMark)
	var order []*html.Node
	for _, pm := range planned {
		if _, ok := byNode[pm.node]; !ok {
			order = append(order, pm.node)
		}
		byNode[pm.node] = append(byNode[pm.node], pm)
	}
	for _, n := range order {
		marks := byNode[n]
		sort.Slice(marks, func(i, j int) bool { return marks[i].start > marks[j].start })
		for _, pm := range marks {
			h.seq++
			wrap(pm.node, pm.start, pm.end, h.seq, pm.quoteID)
		}
	}

	return len(planned)
}

// candidates filters quotes to usable ones, longest text first, capped at
// MaxQuotesPerPage.
func candidates(quotes []*readtrack.Quote) []*readtrack.Quote {
	out := make([]*readtrack.Quote, 0, len(quotes))
	for _, q := range quotes {
		if q == nil {
			continue
		}
		if utf8.RuneCountInString(strings.TrimSpace(q.Text)) < anchor.MinNeedleLen {
			continue
		}
		out = append(out, q)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(strings.TrimSpace(out[i].Text)) >
			utf8.RuneCountInString(strings.TrimSpace(out[j].Text))
	})
	if len(out) > MaxQuotesPerPage {
		out = out[:MaxQuotesPerPage]
	}
	return out
}

// Clear removes every marker from the page, restoring the original text
// nodes. It returns the number of markers removed.
func (h *Highlighter) Clear() int {
	h.applied = false
	return h.clear()
}

func (h *Highlighter) clear() int {
	markers := h.page.doc.Find("[" + MarkerAttr + "]").Nodes
	for _, m := range markers {
		unwrap(m)
	}
	return len(markers)
}

// Refresh applies quotes unless the same quote set was already applied for
// url. It reports whether the page was modified.
func (h *Highlighter) Refresh(url string, quotes []*readtrack.Quote) bool {
	sig := Signature(quotes)
	if h.applied && h.url == url && h.signature == sig {
		return false
	}
	h.apply(quotes)
	h.applied, h.url, h.signature = true, url, sig
	return true
}

// Signature fingerprints a quote set by the ID and text length of each quote.
func Signature(quotes []*readtrack.Quote) string {
	var b strings.Builder
	for _, q := range quotes {
		if q == nil {
			continue
		}
		b.WriteString(q.ID)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(utf8.RuneCountInString(q.Text)))
		b.WriteByte(';')
	}
	sum := xxhash.Sum64String(b.String())
	return hex.EncodeToString(binary.BigEndian.AppendUint64(nil, sum))
}

// Markers returns the current markers in document order.
func (h *Highlighter) Markers() []*Marker {
	nodes := h.page.doc.Find("[" + MarkerAttr + "]").Nodes
	markers := make([]*Marker, len(nodes))
	for i, n := range nodes {
		markers[i] = &Marker{node: n}
	}
	return markers
}

// LocateMarker returns the marker created for the quote with the given ID.
func (h *Highlighter) LocateMarker(id string) *Marker {
	if id == "" {
		return nil
	}
	for _, m := range h.Markers() {
		if m.QuoteID() == id {
			return m
		}
	}
	return nil
}

// LocateMarkerByText returns the first marker whose text equals text,
// ignoring case and surrounding whitespace. It serves quotes saved without
// an ID.
func (h *Highlighter) LocateMarkerByText(text string) *Marker {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	for _, m := range h.Markers() {
		if sameText(m.Text(), text) {
			return m
		}
	}
	return nil
}

// highlightOne locates and wraps a single quote without touching existing
// markers.
func (h *Highlighter) highlightOne(q *readtrack.Quote) *Marker {
	m, ok := anchor.Locate(h.page.source(nil), anchor.Query{
		Needle:        q.Text,
		ContextBefore: q.ContextBefore,
		ContextAfter:  q.ContextAfter,
	})
	if !ok {
		return nil
	}
	h.seq++
	return &Marker{node: wrap(m.Node, m.Start, m.End, h.seq, q.ID)}
}

// ScrollToQuote brings the marker for q into view. The marker is resolved by
// quote ID, then by ID again after reapplying the quotes returned by reload,
// then by text, and finally by highlighting q on its own. A failed reload
// leaves the current markers in place. It reports whether
// a marker was found; not finding one is not an error. The returned error
// only reflects a failed scroll.
func (h *Highlighter) ScrollToQuote(ctx context.Context, q *readtrack.Quote, reload func(context.Context) ([]*readtrack.Quote, error)) (bool, error) {
	if q == nil {
		return false, nil
	}

	m := h.LocateMarker(q.ID)
	if m == nil && q.ID != "" && reload != nil {
		if quotes, err := reload(ctx); err == nil {
			h.apply(quotes)
			if h.applied {
				h.signature = Signature(quotes)
			}
			m = h.LocateMarker(q.ID)
		}
	}
	if m == nil {
		m = h.LocateMarkerByText(q.Text)
	}
	if m == nil {
		m = h.highlightOne(q)
	}
	if m == nil {
		return false, nil
	}

	if h.scroller == nil {
		return true, nil
	}
	return true, h.scroller.ScrollIntoView(ctx, m.Selector())
}
