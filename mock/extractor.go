package mock

import "github.com/fwojciec/readtrack"

var _ readtrack.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of readtrack.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*readtrack.Article, error)
}

func (e *Extractor) Extract(html string) (*readtrack.Article, error) {
	return e.ExtractFn(html)
}
