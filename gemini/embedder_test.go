package gemini_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/carewatch/regrag"
	"github.com/carewatch/regrag/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedder_Initialize(t *testing.T) {
	t.Parallel()

	t.Run("concurrent callers share one load", func(t *testing.T) {
		t.Parallel()

		var loads atomic.Int64
		e := gemini.NewEmbedder(
			gemini.WithDimensions(2),
			gemini.WithLoader(func(ctx context.Context) (gemini.EmbedFunc, error) {
				loads.Add(1)
				time.Sleep(20 * time.Millisecond) // hold the load open
				return constantEmbed([]float32{1, 0}), nil
			}),
		)

		var wg sync.WaitGroup
		errs := make([]error, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = e.Initialize(context.Background())
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}
		assert.Equal(t, int64(1), loads.Load())
	})

	t.Run("repeat calls after success are no-ops", func(t *testing.T) {
		t.Parallel()

		var loads atomic.Int64
		e := gemini.NewEmbedder(
			gemini.WithDimensions(2),
			gemini.WithLoader(func(ctx context.Context) (gemini.EmbedFunc, error) {
				loads.Add(1)
				return constantEmbed([]float32{1, 0}), nil
			}),
		)

		require.NoError(t, e.Initialize(context.Background()))
		require.NoError(t, e.Initialize(context.Background()))
		assert.Equal(t, int64(1), loads.Load())
	})

	t.Run("load failure is sticky", func(t *testing.T) {
		t.Parallel()

		var loads atomic.Int64
		e := gemini.NewEmbedder(
			gemini.WithLoader(func(ctx context.Context) (gemini.EmbedFunc, error) {
				loads.Add(1)
				return nil, regrag.Errorf(regrag.EINTERNAL, "model download failed")
			}),
		)

		err := e.Initialize(context.Background())
		require.Error(t, err)
		assert.Equal(t, regrag.EUNAVAILABLE, regrag.ErrorCode(err))

		err = e.Initialize(context.Background())
		require.Error(t, err)
		assert.Equal(t, regrag.EUNAVAILABLE, regrag.ErrorCode(err))
		assert.Equal(t, int64(1), loads.Load(), "failed load must not be retried")
	})
}

func TestEmbedder_Embed(t *testing.T) {
	t.Parallel()

	t.Run("requires initialization", func(t *testing.T) {
		t.Parallel()

		e := gemini.NewEmbedder(gemini.WithLoader(func(ctx context.Context) (gemini.EmbedFunc, error) {
			return constantEmbed([]float32{1, 0}), nil
		}))

		_, err := e.Embed(context.Background(), "bed hold policy")
		require.Error(t, err)
		assert.Equal(t, regrag.EUNAVAILABLE, regrag.ErrorCode(err))
	})

	t.Run("normalizes to unit length", func(t *testing.T) {
		t.Parallel()

		e := gemini.NewEmbedder(
			gemini.WithDimensions(2),
			gemini.WithLoader(func(ctx context.Context) (gemini.EmbedFunc, error) {
				return constantEmbed([]float32{3, 4}), nil
			}),
		)
		require.NoError(t, e.Initialize(context.Background()))

		vec, err := e.Embed(context.Background(), "bed hold policy")
		require.NoError(t, err)
		assert.InDelta(t, 0.6, vec[0], 1e-6)
		assert.InDelta(t, 0.8, vec[1], 1e-6)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		t.Parallel()

		e := gemini.NewEmbedder(gemini.WithLoader(func(ctx context.Context) (gemini.EmbedFunc, error) {
			return constantEmbed([]float32{1, 0}), nil
		}))
		require.NoError(t, e.Initialize(context.Background()))

		_, err := e.Embed(context.Background(), "")
		assert.Equal(t, regrag.EINVALID, regrag.ErrorCode(err))
	})

	t.Run("rejects wrong dimensionality from the model", func(t *testing.T) {
		t.Parallel()

		e := gemini.NewEmbedder(
			gemini.WithDimensions(3),
			gemini.WithLoader(func(ctx context.Context) (gemini.EmbedFunc, error) {
				return constantEmbed([]float32{1, 0}), nil
			}),
		)
		require.NoError(t, e.Initialize(context.Background()))

		_, err := e.Embed(context.Background(), "bed hold policy")
		require.Error(t, err)
		assert.Equal(t, regrag.EDIMENSION, regrag.ErrorCode(err))
	})
}

func TestEmbedder_BatchEmbed(t *testing.T) {
	t.Parallel()

	e := gemini.NewEmbedder(
		gemini.WithDimensions(2),
		gemini.WithLoader(func(ctx context.Context) (gemini.EmbedFunc, error) {
			return func(ctx context.Context, texts []string, dims int32) ([][]float32, error) {
				vecs := make([][]float32, len(texts))
				for i := range texts {
					vecs[i] = []float32{float32(i + 1), 0}
				}
				return vecs, nil
			}, nil
		}),
	)
	require.NoError(t, e.Initialize(context.Background()))

	vecs, err := e.BatchEmbed(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)
	for _, v := range vecs {
		assert.InDelta(t, 1.0, float64(v[0]), 1e-6, "normalized vectors are unit length")
	}
}

// constantEmbed returns an EmbedFunc that yields a copy of vec for every
// input text.
func constantEmbed(vec []float32) gemini.EmbedFunc {
	return func(ctx context.Context, texts []string, dims int32) ([][]float32, error) {
		vecs := make([][]float32, len(texts))
		for i := range texts {
			v := make([]float32, len(vec))
			copy(v, vec)
			vecs[i] = v
		}
		return vecs, nil
	}
}
