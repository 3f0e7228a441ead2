package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/readtrack"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ readtrack.QuoteService = (*QuoteService)(nil)

// QuoteService implements readtrack.QuoteService using SQLite.
type QuoteService struct {
	db *DB
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(db *DB) *QuoteService {
	return &QuoteService{db: db}
}

const quoteColumns = "id, material_id, text, context_before, context_after, url, timestamp"

// CreateQuote creates a new quote. The URL is stored in normalized form and
// a zero Timestamp is set to the current time.
func (s *QuoteService) CreateQuote(ctx context.Context, quote *readtrack.Quote) error {
	quote.URL = readtrack.NormalizeURL(quote.URL)
	if err := quote.Validate(); err != nil {
		return err
	}

	quote.ID = uuid.New().String()
	if quote.Timestamp == 0 {
		quote.Timestamp = time.Now().UnixMilli()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO quotes (id, material_id, text, context_before, context_after, url, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, quote.ID, quote.MaterialID, quote.Text, quote.ContextBefore, quote.ContextAfter, quote.URL, quote.Timestamp)

	return err
}

// FindQuoteByID retrieves a quote by ID.
func (s *QuoteService) FindQuoteByID(ctx context.Context, id string) (*readtrack.Quote, error) {
	var quote readtrack.Quote
	err := s.db.QueryRowContext(ctx, "SELECT "+quoteColumns+" FROM quotes WHERE id = ?", id).
		Scan(&quote.ID, &quote.MaterialID, &quote.Text, &quote.ContextBefore, &quote.ContextAfter, &quote.URL, &quote.Timestamp)
	if err == sql.ErrNoRows {
		return nil, readtrack.Errorf(readtrack.ENOTFOUND, "quote not found")
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// FindQuotes retrieves quotes matching the filter, oldest first. A URL
// filter is normalized before comparison.
func (s *QuoteService) FindQuotes(ctx context.Context, filter readtrack.QuoteFilter) ([]*readtrack.Quote, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + quoteColumns + " FROM quotes WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.MaterialID != nil {
		query.WriteString(" AND material_id = ?")
		args = append(args, *filter.MaterialID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, readtrack.NormalizeURL(*filter.URL))
	}

	query.WriteString(" ORDER BY timestamp ASC, rowid ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []*readtrack.Quote
	for rows.Next() {
		var quote readtrack.Quote
		if err := rows.Scan(&quote.ID, &quote.MaterialID, &quote.Text, &quote.ContextBefore, &quote.ContextAfter, &quote.URL, &quote.Timestamp); err != nil {
			return nil, err
		}
		quotes = append(quotes, &quote)
	}

	return quotes, rows.Err()
}

// DeleteQuote permanently removes a quote.
func (s *QuoteService) DeleteQuote(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM quotes WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(result, readtrack.Errorf(readtrack.ENOTFOUND, "quote not found"))
}
