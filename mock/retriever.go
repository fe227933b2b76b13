package mock

import (
	"context"

	"github.com/carewatch/regrag"
)

var _ regrag.RetrievalService = (*RetrievalService)(nil)

// RetrievalService is a mock implementation of regrag.RetrievalService.
type RetrievalService struct {
	RetrieveFn func(ctx context.Context, req regrag.RetrievalRequest) *regrag.Evidence
}

func (s *RetrievalService) Retrieve(ctx context.Context, req regrag.RetrievalRequest) *regrag.Evidence {
	return s.RetrieveFn(ctx, req)
}
