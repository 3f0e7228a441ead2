package mock

import (
	"context"

	"github.com/fwojciec/readtrack"
)

var _ readtrack.QuoteService = (*QuoteService)(nil)

// QuoteService is a mock implementation of readtrack.QuoteService.
type QuoteService struct {
	CreateQuoteFn   func(ctx context.Context, quote *readtrack.Quote) error
	FindQuoteByIDFn func(ctx context.Context, id string) (*readtrack.Quote, error)
	FindQuotesFn    func(ctx context.Context, filter readtrack.QuoteFilter) ([]*readtrack.Quote, error)
	DeleteQuoteFn   func(ctx context.Context, id string) error
}

func (s *QuoteService) CreateQuote(ctx context.Context, quote *readtrack.Quote) error {
	return s.CreateQuoteFn(ctx, quote)
}

func (s *QuoteService) FindQuoteByID(ctx context.Context, id string) (*readtrack.Quote, error) {
	return s.FindQuoteByIDFn(ctx, id)
}

func (s *QuoteService) FindQuotes(ctx context.Context, filter readtrack.QuoteFilter) ([]*readtrack.Quote, error) {
	return s.FindQuotesFn(ctx, filter)
}

func (s *QuoteService) DeleteQuote(ctx context.Context, id string) error {
	return s.DeleteQuoteFn(ctx, id)
}
