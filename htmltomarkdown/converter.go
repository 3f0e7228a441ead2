// Package htmltomarkdown exports rendered pages as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/readtrack"
)

var _ readtrack.Converter = (*Converter)(nil)

// DefaultHighlightDelimiter wraps highlighted text as strong emphasis.
const DefaultHighlightDelimiter = "**"

// Converter turns highlighted chapter HTML into Markdown.
type Converter struct {
	conv      *converter.Converter
	delimiter string
}

// Option configures a Converter.
type Option func(*Converter)

// WithHighlightDelimiter sets the string written on both sides of
// highlighted text, e.g. "==" for editors that support mark syntax.
func WithHighlightDelimiter(d string) Option {
	return func(c *Converter) {
		c.delimiter = d
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{delimiter: DefaultHighlightDelimiter}
	for _, opt := range opts {
		opt(c)
	}
	c.conv = converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
			&highlightPlugin{delimiter: c.delimiter},
		),
	)
	return c
}

// Convert renders html as Markdown with every highlight marker wrapped in
// the highlight delimiter.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", readtrack.Errorf(readtrack.EINVALID, "empty HTML input")
	}
	return c.conv.ConvertString(html)
}
