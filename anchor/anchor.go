// Package anchor relocates saved excerpts inside a document.
//
// Locate walks the text runs of a document in order, finds every
// case-insensitive occurrence of a needle and scores each one by how well the
// text around it matches the context captured when the excerpt was saved.
// The walk is read-only and generic over the node type, so it runs against a
// parsed HTML tree as well as against a plain slice of strings in tests.
package anchor

import (
	"strings"
	"unicode/utf8"
)

// Tunable heuristics. The values are kept for compatibility with quotes
// saved by earlier versions.
const (
	// MinNeedleLen is the minimum needle length in characters.
	// Shorter needles are too ambiguous to anchor.
	MinNeedleLen = 3

	// ExactBonus is added to a side's score when its context matches exactly.
	ExactBonus = 50

	// MaxOccurrencesPerNode bounds the occurrences examined in one text run.
	MaxOccurrencesPerNode = 250

	// MaxTextNodes bounds the number of text runs visited per walk.
	MaxTextNodes = 25000
)

// Source visits candidate text runs in document order.
// The walk stops as soon as visit returns false.
type Source[N any] interface {
	Each(visit func(node N, text string) bool)
}

// SourceFunc adapts an ordinary function to the Source interface.
type SourceFunc[N any] func(visit func(node N, text string) bool)

// Each calls f(visit).
func (f SourceFunc[N]) Each(visit func(node N, text string) bool) {
	f(visit)
}

// Strings returns a Source over a slice of text runs. Nodes are slice indexes.
func Strings(texts []string) Source[int] {
	return SourceFunc[int](func(visit func(int, string) bool) {
		for i, s := range texts {
			if !visit(i, s) {
				return
			}
		}
	})
}

// Query describes the excerpt to locate.
type Query struct {
	Needle        string
	ContextBefore string
	ContextAfter  string
}

// Match identifies a substring inside one text run. Start and End are byte
// offsets into the run's text. Matches are never persisted.
type Match[N any] struct {
	Node  N
	Start int
	End   int
	Score int
	Exact bool // both contexts matched exactly
}

// Locate returns the best-scoring occurrence of q.Needle in src.
//
// The needle is trimmed and must be at least MinNeedleLen characters long.
// Only strictly greater scores replace the current best, so ties resolve to
// the first occurrence in document order. An occurrence whose contexts both
// match exactly ends the walk. Hitting MaxOccurrencesPerNode or MaxTextNodes
// also ends the walk, returning the best match seen so far.
func Locate[N any](src Source[N], q Query) (Match[N], bool) {
	var best Match[N]

	needle := strings.TrimSpace(q.Needle)
	if utf8.RuneCountInString(needle) < MinNeedleLen {
		return best, false
	}
	foldedNeedle := fold(needle).text

	found := false
	visited := 0
	src.Each(func(node N, text string) bool {
		visited++
		if visited > MaxTextNodes {
			return false
		}
		ft := fold(text)
		occurrences := 0
		for from := 0; from <= len(ft.text); {
			i := strings.Index(ft.text[from:], foldedNeedle)
			if i < 0 {
				break
			}
			fs := from + i
			start, end := ft.original(fs), ft.original(fs+len(foldedNeedle))
			occurrences++

			score, exact := Score(text[:start], text[end:], q.ContextBefore, q.ContextAfter)
			if !found || score > best.Score {
				best = Match[N]{Node: node, Start: start, End: end, Score: score, Exact: exact}
				found = true
			}
			if exact {
				return false
			}
			if occurrences >= MaxOccurrencesPerNode {
				return false
			}
			from = fs + 1
		}
		return true
	})

	return best, found
}
