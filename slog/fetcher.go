// Package slog provides logging decorators for the core service
// interfaces, built on the standard library structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/carewatch/regrag"
)

// Ensure LoggingFetcher implements regrag.DocumentFetcher.
var _ regrag.DocumentFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a DocumentFetcher with per-fetch logging.
type LoggingFetcher struct {
	next   regrag.DocumentFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next regrag.DocumentFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) *regrag.CachedDocument {
	begin := time.Now()
	doc := f.next.Fetch(ctx, url)
	if doc != nil && doc.IsError() {
		f.logger.Warn("document fetch failed",
			"url", url,
			"error", doc.Err,
			"duration", time.Since(begin),
		)
		return doc
	}
	f.logger.Info("document fetch",
		"url", url,
		"type", doc.Type,
		"size", doc.Size,
		"duration", time.Since(begin),
	)
	return doc
}

// FetchMany delegates to the wrapped fetcher and logs batch totals.
func (f *LoggingFetcher) FetchMany(ctx context.Context, urls []string, maxConcurrent int) []*regrag.CachedDocument {
	begin := time.Now()
	docs := f.next.FetchMany(ctx, urls, maxConcurrent)
	failed := 0
	for _, doc := range docs {
		if doc == nil || doc.IsError() {
			failed++
		}
	}
	f.logger.Info("document batch fetch",
		"urls", len(urls),
		"failed", failed,
		"duration", time.Since(begin),
	)
	return docs
}

// Clear delegates to the wrapped fetcher.
func (f *LoggingFetcher) Clear() {
	f.next.Clear()
	f.logger.Info("document cache cleared")
}

// Stats delegates to the wrapped fetcher.
func (f *LoggingFetcher) Stats() regrag.CacheStats {
	return f.next.Stats()
}
