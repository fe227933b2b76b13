// Package http provides an HTTP-based implementation of
// regrag.DocumentFetcher with time-bounded caching of cleaned document text.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/carewatch/regrag"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a fetched document stays valid. Regulatory
// documents change rarely, so staleness within the window is accepted.
const DefaultTTL = 7 * 24 * time.Hour

// DefaultFetchTimeout bounds each HTTP request.
const DefaultFetchTimeout = 15 * time.Second

// DefaultMaxConcurrent is the batch size used when FetchMany is called
// without a positive limit.
const DefaultMaxConcurrent = 3

// Some state sites refuse requests without a browser user agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// pdfPlaceholder stands in for PDF content, which is out of scope to parse.
const pdfPlaceholder = "[PDF Document - Full text parsing requires download]"

// Ensure Cache implements regrag.DocumentFetcher at compile time.
var _ regrag.DocumentFetcher = (*Cache)(nil)

// Cache fetches URLs, extracts readable text, and keeps successful results
// for a bounded time. Failed fetches produce error-typed documents and are
// never cached, so transient failures get retried on the next call.
// Concurrent fetches of the same cold URL collapse into one in-flight
// request.
//
// Cache is safe for concurrent use.
type Cache struct {
	client    *http.Client
	extractor regrag.Extractor
	limiter   regrag.DomainLimiter
	ttl       time.Duration
	timeout   time.Duration
	now       func() time.Time

	mu      sync.Mutex
	entries map[string]*cacheEntry

	group  singleflight.Group
	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry struct {
	doc      *regrag.CachedDocument
	storedAt time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides the document time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithTimeout overrides the per-request fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Cache) { c.timeout = d }
}

// WithLimiter installs a per-domain rate limiter applied before every
// network fetch.
func WithLimiter(l regrag.DomainLimiter) Option {
	return func(c *Cache) { c.limiter = l }
}

// WithClock overrides the time source. Used by tests to force expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// NewCache creates a Cache using the given extractor for HTML content.
func NewCache(extractor regrag.Extractor, opts ...Option) *Cache {
	c := &Cache{
		extractor: extractor,
		ttl:       DefaultTTL,
		timeout:   DefaultFetchTimeout,
		now:       time.Now,
		entries:   make(map[string]*cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.client = &http.Client{Timeout: c.timeout}
	return c
}

// Fetch returns the cached document for url when present and unexpired; a
// hit never touches the network. On a miss it performs the fetch, caches a
// successful result, and returns error-typed documents for failures.
func (c *Cache) Fetch(ctx context.Context, rawURL string) *regrag.CachedDocument {
	if doc := c.lookup(rawURL); doc != nil {
		c.hits.Add(1)
		return doc
	}
	c.misses.Add(1)

	v, _, _ := c.group.Do(rawURL, func() (any, error) {
		doc := c.fetchRemote(ctx, rawURL)
		if !doc.IsError() {
			c.store(rawURL, doc)
		}
		return doc, nil
	})
	return v.(*regrag.CachedDocument)
}

// FetchMany fetches urls in sequential batches of maxConcurrent. Within a
// batch fetches run concurrently; batches run one after another so target
// servers never see more than maxConcurrent requests from us at once.
// Results are in input order and individual failures never abort siblings.
func (c *Cache) FetchMany(ctx context.Context, urls []string, maxConcurrent int) []*regrag.CachedDocument {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}

	results := make([]*regrag.CachedDocument, len(urls))
	for start := 0; start < len(urls); start += maxConcurrent {
		end := start + maxConcurrent
		if end > len(urls) {
			end = len(urls)
		}

		var g errgroup.Group
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				results[i] = c.Fetch(ctx, urls[i])
				return nil
			})
		}
		_ = g.Wait()
	}
	return results
}

// Clear evicts every cached document. Hit/miss counters are preserved.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Stats reports cache size and hit/miss counters.
func (c *Cache) Stats() regrag.CacheStats {
	c.mu.Lock()
	keys := len(c.entries)
	c.mu.Unlock()

	return regrag.CacheStats{
		Keys:   keys,
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

// lookup returns the unexpired cached document for url, evicting an expired
// entry lazily.
func (c *Cache) lookup(url string) *regrag.CachedDocument {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[url]
	if !ok {
		return nil
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		delete(c.entries, url)
		return nil
	}
	return entry.doc
}

func (c *Cache) store(url string, doc *regrag.CachedDocument) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = &cacheEntry{doc: doc, storedAt: c.now()}
}

// fetchRemote performs the HTTP GET and classifies the response by content
// type.
func (c *Cache) fetchRemote(ctx context.Context, rawURL string) *regrag.CachedDocument {
	if c.limiter != nil {
		if host := hostOf(rawURL); host != "" {
			if err := c.limiter.Wait(ctx, host); err != nil {
				return c.errorDocument(rawURL, err)
			}
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return c.errorDocument(rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.client.Do(req)
	if err != nil {
		return c.errorDocument(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorDocument(rawURL, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	contentType := resp.Header.Get("Content-Type")

	var text, docType string
	switch {
	case strings.Contains(contentType, "text/html"):
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return c.errorDocument(rawURL, err)
		}
		result, err := c.extractor.Extract(string(body))
		if err != nil {
			return c.errorDocument(rawURL, err)
		}
		text = truncate(result.Text)
		docType = regrag.DocumentTypeHTML

	case strings.Contains(contentType, "application/pdf"):
		text = pdfPlaceholder
		docType = regrag.DocumentTypePDF

	case strings.Contains(contentType, "text/plain"):
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return c.errorDocument(rawURL, err)
		}
		text = string(body)
		docType = regrag.DocumentTypeText

	default:
		text = fmt.Sprintf("[Document type: %s - May require specialized parsing]", contentType)
		docType = contentType
	}

	return &regrag.CachedDocument{
		URL:         rawURL,
		Text:        text,
		Type:        docType,
		ContentHash: fmt.Sprintf("%016x", xxhash.Sum64String(text)),
		FetchedAt:   c.now().UTC().Format(time.RFC3339),
		Size:        len(text),
	}
}

func (c *Cache) errorDocument(url string, err error) *regrag.CachedDocument {
	return &regrag.CachedDocument{
		URL:       url,
		Type:      regrag.DocumentTypeError,
		Err:       err.Error(),
		FetchedAt: c.now().UTC().Format(time.RFC3339),
	}
}

func truncate(text string) string {
	if len(text) <= regrag.MaxDocumentLength {
		return text
	}
	return text[:regrag.MaxDocumentLength] + regrag.TruncationMarker
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
