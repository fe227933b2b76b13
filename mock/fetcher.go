package mock

import (
	"context"

	"github.com/carewatch/regrag"
)

var _ regrag.DocumentFetcher = (*DocumentFetcher)(nil)

// DocumentFetcher is a mock implementation of regrag.DocumentFetcher.
type DocumentFetcher struct {
	FetchFn     func(ctx context.Context, url string) *regrag.CachedDocument
	FetchManyFn func(ctx context.Context, urls []string, maxConcurrent int) []*regrag.CachedDocument
	ClearFn     func()
	StatsFn     func() regrag.CacheStats
}

func (f *DocumentFetcher) Fetch(ctx context.Context, url string) *regrag.CachedDocument {
	return f.FetchFn(ctx, url)
}

func (f *DocumentFetcher) FetchMany(ctx context.Context, urls []string, maxConcurrent int) []*regrag.CachedDocument {
	return f.FetchManyFn(ctx, urls, maxConcurrent)
}

func (f *DocumentFetcher) Clear() {
	f.ClearFn()
}

func (f *DocumentFetcher) Stats() regrag.CacheStats {
	return f.StatsFn()
}
