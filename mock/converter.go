package mock

import "github.com/fwojciec/readtrack"

var _ readtrack.Converter = (*Converter)(nil)

// Converter is a mock implementation of readtrack.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
