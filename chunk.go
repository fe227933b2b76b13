package regrag

import (
	"context"
	"fmt"
	"strings"
)

// Chunk is a pre-segmented piece of a regulatory document paired with its
// precomputed embedding vector. Chunks are immutable once loaded and belong
// to exactly one jurisdiction partition.
type Chunk struct {
	ID       string        `json:"id,omitempty"`
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`

	// Embedding is the precomputed vector for Text. It never leaves the
	// VectorIndex boundary: search results carry the similarity score only.
	Embedding []float32 `json:"embedding"`
}

// ChunkMetadata describes the provenance of a chunk.
type ChunkMetadata struct {
	// Source names the originating document (e.g., a statute or manual).
	Source string `json:"source"`

	// DocType categorizes the document (e.g., "regulation", "manual").
	DocType string `json:"doc_type"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.Text == "" {
		return Errorf(EINVALID, "chunk text required")
	}
	if len(c.Embedding) == 0 {
		return Errorf(EINVALID, "chunk embedding required")
	}
	return nil
}

// SearchResult is a chunk plus its cosine similarity against the current
// query vector. The raw embedding is stripped before results are returned to
// reduce payload size.
type SearchResult struct {
	Text       string        `json:"text"`
	Metadata   ChunkMetadata `json:"metadata"`
	Similarity float64       `json:"similarity"` // in [-1, 1]
}

// PartitionStats summarizes a loaded jurisdiction partition for
// observability.
type PartitionStats struct {
	Jurisdiction string         `json:"jurisdiction"`
	TotalChunks  int            `json:"totalChunks"`
	DocTypes     map[string]int `json:"documentTypes"`
	Sources      []string       `json:"sources"`
}

// VectorIndex holds per-jurisdiction chunk collections and answers top-K
// similarity queries. Jurisdiction keys are case-insensitive.
//
// Implementations must be safe for concurrent use.
type VectorIndex interface {
	// LoadPartition reads the chunk source for a jurisdiction. It no-ops if
	// the partition is already loaded, and marks the jurisdiction absent
	// (without error) if no source exists. Absent is a valid, expected
	// state; it is cached so the load is attempted at most once per process.
	LoadPartition(ctx context.Context, jurisdiction string) error

	// Search embeds the query text and returns the topK most similar chunks,
	// ordered by similarity descending with ties broken by original chunk
	// order. An absent or empty jurisdiction yields an empty slice, not an
	// error. A vector length mismatch between the query and any stored chunk
	// returns EDIMENSION.
	Search(ctx context.Context, jurisdiction, query string, topK int) ([]SearchResult, error)

	// Stats returns partition statistics, or ENOTFOUND for an unloaded or
	// absent jurisdiction.
	Stats(jurisdiction string) (*PartitionStats, error)
}

// FormatContext concatenates search results into a single string suitable
// for prompt assembly. Each result is rendered with its source, type, and
// similarity percentage, in result order.
func FormatContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for i, r := range results {
		parts = append(parts, fmt.Sprintf(
			"\n[Document %d]\nSource: %s\nType: %s\nRelevance: %.1f%%\n\n%s\n\n---",
			i+1, r.Metadata.Source, r.Metadata.DocType, r.Similarity*100, r.Text,
		))
	}

	return strings.Join(parts, "\n\n")
}
