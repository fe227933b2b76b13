package mock

import (
	"context"

	"github.com/carewatch/regrag"
)

var _ regrag.VectorIndex = (*VectorIndex)(nil)

// VectorIndex is a mock implementation of regrag.VectorIndex.
type VectorIndex struct {
	LoadPartitionFn func(ctx context.Context, jurisdiction string) error
	SearchFn        func(ctx context.Context, jurisdiction, query string, topK int) ([]regrag.SearchResult, error)
	StatsFn         func(jurisdiction string) (*regrag.PartitionStats, error)
}

func (i *VectorIndex) LoadPartition(ctx context.Context, jurisdiction string) error {
	return i.LoadPartitionFn(ctx, jurisdiction)
}

func (i *VectorIndex) Search(ctx context.Context, jurisdiction, query string, topK int) ([]regrag.SearchResult, error) {
	return i.SearchFn(ctx, jurisdiction, query, topK)
}

func (i *VectorIndex) Stats(jurisdiction string) (*regrag.PartitionStats, error) {
	return i.StatsFn(jurisdiction)
}
