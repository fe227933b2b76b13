package regrag

import "context"

// Embedder converts a text string into a fixed-length vector suitable for
// cosine comparison. Vectors are mean-pooled and L2-normalized at embed
// time, so the dot product of two embeddings equals their cosine similarity.
//
// Implementations must be safe for concurrent use.
type Embedder interface {
	// Initialize loads the underlying model. It is idempotent: concurrent
	// callers share a single in-flight load rather than each triggering one.
	// A load failure returns EUNAVAILABLE and is sticky for the process
	// lifetime; callers must treat it as "semantic search unavailable".
	Initialize(ctx context.Context) error

	// Embed returns the vector for text. It returns EUNAVAILABLE if
	// Initialize has not completed successfully. Deterministic for identical
	// input text and model version.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the dimensionality of produced vectors.
	Dimensions() int
}
