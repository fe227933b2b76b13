package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/carewatch/regrag"
)

// BatchEmbedder is satisfied by the gemini embedder and by test fakes.
type BatchEmbedder interface {
	Initialize(ctx context.Context) error
	BatchEmbed(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator turns chunked text into an embeddings file the vector index
// can load.
type Generator struct {
	Embedder  BatchEmbedder
	BatchSize int

	// NewID generates chunk IDs; defaults to random UUIDs.
	NewID func() string
}

// Generate reads chunks from input, embeds their text in batches, and
// writes <outDir>/<jurisdiction>.json. It returns the written path.
func (g *Generator) Generate(ctx context.Context, input, jurisdiction, outDir string) (string, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return "", fmt.Errorf("failed to read chunks file %q: %w", input, err)
	}

	var chunks []regrag.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return "", fmt.Errorf("failed to parse chunks file %q: %w", input, err)
	}
	if len(chunks) == 0 {
		return "", fmt.Errorf("chunks file %q contains no chunks", input)
	}
	for i := range chunks {
		if strings.TrimSpace(chunks[i].Text) == "" {
			return "", fmt.Errorf("chunk %d has empty text", i)
		}
	}

	if err := g.Embedder.Initialize(ctx); err != nil {
		return "", fmt.Errorf("failed to initialize embedding model: %s", regrag.ErrorMessage(err))
	}

	newID := g.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	batchSize := g.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	for start := 0; start < len(chunks); start += batchSize {
		end := min(start+batchSize, len(chunks))

		texts := make([]string, 0, end-start)
		for _, c := range chunks[start:end] {
			texts = append(texts, c.Text)
		}

		vectors, err := g.Embedder.BatchEmbed(ctx, texts)
		if err != nil {
			return "", fmt.Errorf("failed to embed chunks %d-%d: %s", start, end-1, regrag.ErrorMessage(err))
		}

		for i := range vectors {
			chunks[start+i].Embedding = vectors[i]
			if chunks[start+i].ID == "" {
				chunks[start+i].ID = newID()
			}
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %q: %w", outDir, err)
	}

	out, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(outDir, strings.ToLower(strings.TrimSpace(jurisdiction))+".json")
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("failed to write embeddings file %q: %w", path, err)
	}
	return path, nil
}
