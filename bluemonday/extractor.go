// Package bluemonday sanitizes reader-mode articles with bluemonday before
// they are highlighted and rendered.
package bluemonday

import (
	"github.com/fwojciec/readtrack"
	"github.com/microcosm-cc/bluemonday"
)

var _ readtrack.Extractor = (*Extractor)(nil)

// Extractor wraps another Extractor and strips scripts, styles, frames,
// event handlers and unsafe links from the article content. Formatting and
// links survive.
type Extractor struct {
	next   readtrack.Extractor
	policy *bluemonday.Policy
}

// NewExtractor returns a sanitizing wrapper around next.
func NewExtractor(next readtrack.Extractor) *Extractor {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption", "mark")
	return &Extractor{next: next, policy: policy}
}

func (e *Extractor) Extract(html string) (*readtrack.Article, error) {
	article, err := e.next.Extract(html)
	if err != nil {
		return nil, err
	}
	return &readtrack.Article{
		Title:       article.Title,
		ContentHTML: e.policy.Sanitize(article.ContentHTML),
	}, nil
}
