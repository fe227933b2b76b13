// Package goquery implements regrag.Extractor with CSS-selector based
// boilerplate removal. It is the primary extractor: fast, dependency-light,
// and predictable on the plain server-rendered pages state agencies publish.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/carewatch/regrag"
)

// boilerplateSelector names the elements stripped before text extraction.
const boilerplateSelector = "script, style, nav, footer, header, aside, .navigation, .menu, .sidebar"

// contentSelector names common main-content containers, tried before
// falling back to the whole body.
const contentSelector = "main, article, .content, .main-content, #content, #main"

var whitespace = regexp.MustCompile(`\s+`)

// Ensure Extractor implements regrag.Extractor at compile time.
var _ regrag.Extractor = (*Extractor)(nil)

// Extractor reduces an HTML page to its visible text.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract removes boilerplate elements, prefers a main-content container
// over the full body, and returns the remaining text with whitespace
// collapsed.
func (e *Extractor) Extract(html string) (*regrag.ExtractResult, error) {
	if html == "" {
		return nil, regrag.Errorf(regrag.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, regrag.Errorf(regrag.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find(boilerplateSelector).Remove()

	content := doc.Find(contentSelector).First()
	if content.Length() == 0 {
		content = doc.Find("body")
	}

	text := strings.TrimSpace(whitespace.ReplaceAllString(content.Text(), " "))

	return &regrag.ExtractResult{
		Title: title,
		Text:  text,
	}, nil
}
