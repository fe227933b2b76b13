// Package readability implements regrag.Extractor using go-readability's
// article extraction. It handles news-style pages better than plain
// selector stripping.
package readability

import (
	"strings"

	"github.com/carewatch/regrag"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements regrag.Extractor at compile time.
var _ regrag.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML. The
// extracted content HTML is flattened to text through the converter.
type Extractor struct {
	converter regrag.Converter
}

// NewExtractor creates a new Extractor.
func NewExtractor(converter regrag.Converter) *Extractor {
	return &Extractor{converter: converter}
}

// Extract processes raw HTML and returns the readable text.
func (e *Extractor) Extract(rawHTML string) (*regrag.ExtractResult, error) {
	if rawHTML == "" {
		return nil, regrag.Errorf(regrag.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	text, err := e.converter.Convert(article.Content)
	if err != nil {
		return nil, err
	}

	return &regrag.ExtractResult{
		Title: article.Title,
		Text:  strings.TrimSpace(text),
	}, nil
}
