// Package readability implements reader mode with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/readtrack"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements readtrack.Extractor at compile time.
var _ readtrack.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the main content of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*readtrack.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, readtrack.Errorf(readtrack.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, readtrack.Errorf(readtrack.ENOTFOUND, "no main content found")
	}

	return &readtrack.Article{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
