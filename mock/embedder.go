package mock

import (
	"context"

	"github.com/carewatch/regrag"
)

var _ regrag.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of regrag.Embedder.
type Embedder struct {
	InitializeFn func(ctx context.Context) error
	EmbedFn      func(ctx context.Context, text string) ([]float32, error)
	DimensionsFn func() int
}

func (e *Embedder) Initialize(ctx context.Context) error {
	return e.InitializeFn(ctx)
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

func (e *Embedder) Dimensions() int {
	return e.DimensionsFn()
}
