package main_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carewatch/regrag"
	main "github.com/carewatch/regrag/cmd/regembed"
)

type fakeEmbedder struct {
	initErr error
	batches [][]string
}

func (f *fakeEmbedder) Initialize(ctx context.Context) error {
	return f.initErr
}

func (f *fakeEmbedder) BatchEmbed(ctx context.Context, texts []string) ([][]float32, error) {
	f.batches = append(f.batches, texts)
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{float32(len(texts[i])), 1}
	}
	return vectors, nil
}

func writeChunks(t *testing.T, chunks []regrag.Chunk) string {
	t.Helper()
	data, err := json.Marshal(chunks)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "chunks.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("writes embeddings file with IDs and vectors", func(t *testing.T) {
		t.Parallel()

		input := writeChunks(t, []regrag.Chunk{
			{Text: "Bed hold rules.", Metadata: regrag.ChunkMetadata{Source: "https://example.gov", DocType: "regulation"}},
			{Text: "Discharge planning.", Metadata: regrag.ChunkMetadata{Source: "https://example.gov", DocType: "manual"}},
		})
		outDir := t.TempDir()

		ids := 0
		gen := &main.Generator{
			Embedder: &fakeEmbedder{},
			NewID: func() string {
				ids++
				return fmt.Sprintf("chunk-%d", ids)
			},
		}

		path, err := gen.Generate(context.Background(), input, "Texas", outDir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(outDir, "texas.json"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var got []regrag.Chunk
		require.NoError(t, json.Unmarshal(data, &got))
		require.Len(t, got, 2)
		assert.Equal(t, "chunk-1", got[0].ID)
		assert.Equal(t, "chunk-2", got[1].ID)
		assert.NotEmpty(t, got[0].Embedding)
		assert.Equal(t, "regulation", got[0].Metadata.DocType)
	})

	t.Run("embeds in batches", func(t *testing.T) {
		t.Parallel()

		chunks := make([]regrag.Chunk, 5)
		for i := range chunks {
			chunks[i] = regrag.Chunk{Text: fmt.Sprintf("chunk %d", i)}
		}
		input := writeChunks(t, chunks)

		embedder := &fakeEmbedder{}
		gen := &main.Generator{Embedder: embedder, BatchSize: 2}

		_, err := gen.Generate(context.Background(), input, "texas", t.TempDir())
		require.NoError(t, err)
		require.Len(t, embedder.batches, 3)
		assert.Len(t, embedder.batches[0], 2)
		assert.Len(t, embedder.batches[2], 1)
	})

	t.Run("rejects empty chunk text", func(t *testing.T) {
		t.Parallel()

		input := writeChunks(t, []regrag.Chunk{{Text: "ok"}, {Text: "   "}})
		gen := &main.Generator{Embedder: &fakeEmbedder{}}

		_, err := gen.Generate(context.Background(), input, "texas", t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chunk 1")
	})

	t.Run("propagates initialization failure", func(t *testing.T) {
		t.Parallel()

		input := writeChunks(t, []regrag.Chunk{{Text: "ok"}})
		gen := &main.Generator{
			Embedder: &fakeEmbedder{initErr: regrag.Errorf(regrag.EUNAVAILABLE, "embedding model unavailable")},
		}

		_, err := gen.Generate(context.Background(), input, "texas", t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "embedding model unavailable")
	})
}
