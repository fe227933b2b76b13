// Package trafilatura implements regrag.Extractor using go-trafilatura's
// content extraction with fallback heuristics.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/carewatch/regrag"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements regrag.Extractor at compile time.
var _ regrag.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML. The
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var text string
	if result.ContentNode != nil {
		contentHTML, err := renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
		text, err = e.converter.Convert(contentHTML)
		if err != nil {
			return nil, err
		}
	}

	return &regrag.ExtractResult{
		Title: result.Metadata.Title,
		Text:  strings.TrimSpace(text),
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
