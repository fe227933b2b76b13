package regrag

import "context"

// Document types recognized by the document cache. Responses with any other
// content type carry the raw content type as their Type value.
const (
	DocumentTypeHTML  = "html"
	DocumentTypePDF   = "pdf"
	DocumentTypeText  = "text"
	DocumentTypeError = "error"
)

// MaxDocumentLength bounds the cleaned text kept for a fetched document.
// Longer documents are cut and TruncationMarker is appended.
const MaxDocumentLength = 100000

// TruncationMarker is appended to documents cut at MaxDocumentLength.
const TruncationMarker = "\n\n[Document truncated due to length]"

// CachedDocument is the cleaned text of a fetched URL together with its
// provenance. Error-typed documents are never stored in the cache, so a
// transient failure is retried on the next call instead of being remembered
// as a dead link.
type CachedDocument struct {
	URL         string `json:"url"`
	Text        string `json:"text"`
	Type        string `json:"type"`
	ContentHash string `json:"contentHash,omitempty"`
	FetchedAt   string `json:"fetchedAt"` // RFC 3339
	Size        int    `json:"size"`

	// Err describes the failure for error-typed documents.
	Err string `json:"error,omitempty"`
}

// IsError reports whether the document represents a failed fetch.
func (d *CachedDocument) IsError() bool {
	return d.Type == DocumentTypeError
}

// CacheStats exposes document cache counters for operational tooling.
type CacheStats struct {
	Keys   int   `json:"keys"`
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// DocumentFetcher retrieves URLs, extracts readable text, and caches the
// result for a bounded time.
//
// Implementations must be safe for concurrent use.
type DocumentFetcher interface {
	// Fetch returns the cached entry when present and unexpired; otherwise
	// it performs an HTTP GET, classifies and cleans the response, and
	// caches the result. Fetch failures are reported as error-typed
	// documents, never as a Go error, so batch operations are not aborted
	// by a single bad URL.
	Fetch(ctx context.Context, url string) *CachedDocument

	// FetchMany fetches urls in sequential batches of maxConcurrent. Within
	// a batch fetches run concurrently; batches run one after another so no
	// more than maxConcurrent requests are ever in flight. Results are in
	// input order.
	FetchMany(ctx context.Context, urls []string, maxConcurrent int) []*CachedDocument

	// Clear evicts every cached document.
	Clear()

	// Stats reports cache size and hit/miss counters.
	Stats() CacheStats
}

// ExtractResult holds the readable content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title, when the extractor can determine one.
	Title string

	// Text is the visible text with boilerplate removed and whitespace
	// collapsed.
	Text string
}

// Extractor reduces an HTML page to its readable text, removing boilerplate
// navigation, header, footer, script, and style content.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter transforms HTML content into plain-ish text (Markdown).
// Extractors that produce content HTML use a Converter to flatten it.
type Converter interface {
	Convert(html string) (string, error)
}

// DomainLimiter rate limits outbound requests per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled before the wait completes.
	Wait(ctx context.Context, domain string) error
}
