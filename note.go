package readtrack

import "context"

// Note is an exported page: its Markdown content with saved quotes
// highlighted, plus the reading state recorded for it.
type Note struct {
	URL      string
	Title    string
	Percent  int // -1 when no progress has been recorded
	Quotes   []*Quote
	Markdown string
}

// NoteStore persists exported notes with all-or-nothing semantics.
type NoteStore interface {
	// Save stages a note. Nothing is visible until Commit.
	Save(ctx context.Context, note *Note) error

	// Commit publishes every staged note, replacing a previous export.
	Commit() error

	// Abort discards staged notes.
	Abort() error
}
