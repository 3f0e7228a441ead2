// Package trafilatura implements reader mode with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/readtrack"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements readtrack.Extractor at compile time.
var _ readtrack.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the main content of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content, falling back to
// the bundled readability extractors when trafilatura finds too little.
func (e *Extractor) Extract(rawHTML string) (*readtrack.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, readtrack.Errorf(readtrack.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}
	if result.ContentNode == nil {
		return nil, readtrack.Errorf(readtrack.ENOTFOUND, "no main content found")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, err
	}

	return &readtrack.Article{
		Title:       result.Metadata.Title,
		ContentHTML: buf.String(),
	}, nil
}
