package readtrack

import (
	"context"
	"strings"
	"unicode/utf8"
)

// ContextWindow is the number of characters captured on each side of a
// selection when a quote is saved.
const ContextWindow = 120

// Quote is a saved text excerpt anchored to a page via its text and the
// context surrounding it at capture time. Quotes are immutable once created.
type Quote struct {
	ID            string `json:"id"`
	MaterialID    string `json:"materialId"`
	Text          string `json:"text"`
	ContextBefore string `json:"contextBefore"`
	ContextAfter  string `json:"contextAfter"`
	URL           string `json:"url"`
	Timestamp     int64  `json:"timestamp"` // epoch milliseconds
}

// Validate returns an error if the quote contains invalid fields.
func (q *Quote) Validate() error {
	if q.MaterialID == "" {
		return Errorf(EINVALID, "quote material ID required")
	}
	if strings.TrimSpace(q.Text) == "" {
		return Errorf(EINVALID, "quote text required")
	}
	if q.Text != strings.TrimSpace(q.Text) {
		return Errorf(EINVALID, "quote text must be trimmed")
	}
	if q.URL == "" {
		return Errorf(EINVALID, "quote URL required")
	}
	if utf8.RuneCountInString(q.ContextBefore) > ContextWindow {
		return Errorf(EINVALID, "quote context before exceeds %d characters", ContextWindow)
	}
	if utf8.RuneCountInString(q.ContextAfter) > ContextWindow {
		return Errorf(EINVALID, "quote context after exceeds %d characters", ContextWindow)
	}
	return nil
}

// QuoteService represents a service for managing quotes.
type QuoteService interface {
	// CreateQuote creates a new quote.
	CreateQuote(ctx context.Context, quote *Quote) error

	// FindQuoteByID retrieves a quote by ID.
	// Returns ENOTFOUND if quote does not exist.
	FindQuoteByID(ctx context.Context, id string) (*Quote, error)

	// FindQuotes retrieves quotes matching the filter, oldest first.
	FindQuotes(ctx context.Context, filter QuoteFilter) ([]*Quote, error)

	// DeleteQuote permanently removes a quote.
	// Returns ENOTFOUND if quote does not exist.
	DeleteQuote(ctx context.Context, id string) error
}

// QuoteFilter represents a filter for FindQuotes.
type QuoteFilter struct {
	ID         *string `json:"id"`
	MaterialID *string `json:"materialId"`
	URL        *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Selection is the user-selected text of a page plus the context captured
// around it.
type Selection struct {
	Text          string `json:"text"`
	ContextBefore string `json:"contextBefore"`
	ContextAfter  string `json:"contextAfter"`
}
