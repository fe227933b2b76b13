package mock

import "github.com/carewatch/regrag"

var _ regrag.Converter = (*Converter)(nil)

// Converter is a mock implementation of regrag.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
