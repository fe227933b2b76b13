package mock

import "github.com/carewatch/regrag"

var _ regrag.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of regrag.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*regrag.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*regrag.ExtractResult, error) {
	return e.ExtractFn(html)
}
