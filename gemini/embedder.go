// Package gemini implements regrag.Embedder using the Google Gemini
// embedding API.
package gemini

import (
	"context"
	"math"
	"os"
	"sync"

	"github.com/carewatch/regrag"
	"google.golang.org/genai"
)

// DefaultModel is the embedding model used unless overridden.
const DefaultModel = "gemini-embedding-001"

// DefaultDimensions is the vector size requested from the model. It must
// match the dimensionality of the precomputed embeddings files.
const DefaultDimensions = 384

// Ensure Embedder implements regrag.Embedder at compile time.
var _ regrag.Embedder = (*Embedder)(nil)

// EmbedFunc performs one batch embedding call. It is the seam between the
// Embedder state machine and the Gemini API.
type EmbedFunc func(ctx context.Context, texts []string, dims int32) ([][]float32, error)

// LoadFunc obtains an EmbedFunc. The default implementation creates a Gemini
// API client; tests substitute their own.
type LoadFunc func(ctx context.Context) (EmbedFunc, error)

// Embedder converts text into L2-normalized vectors. The underlying client
// is loaded lazily and at most once: concurrent Initialize calls share a
// single in-flight load, and a load failure is sticky for the process
// lifetime so the rest of the system degrades to summaries-only mode
// instead of hammering a broken dependency.
type Embedder struct {
	model string
	dims  int
	load  LoadFunc

	mu      sync.Mutex
	state   state
	done    chan struct{} // closed when the in-flight load resolves
	loadErr error
	embed   EmbedFunc
}

type state int

const (
	stateUninitialized state = iota
	stateLoading
	stateReady
	stateFailed
)

// Option configures an Embedder.
type Option func(*Embedder)

// WithModel overrides the embedding model.
func WithModel(model string) Option {
	return func(e *Embedder) { e.model = model }
}

// WithDimensions overrides the requested vector size.
func WithDimensions(dims int) Option {
	return func(e *Embedder) { e.dims = dims }
}

// WithLoader overrides how the embedding client is obtained. Used by tests.
func WithLoader(load LoadFunc) Option {
	return func(e *Embedder) { e.load = load }
}

// NewEmbedder creates an Embedder. No network work happens until
// Initialize.
func NewEmbedder(opts ...Option) *Embedder {
	e := &Embedder{
		model: DefaultModel,
		dims:  DefaultDimensions,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.load == nil {
		e.load = e.loadClient
	}
	return e
}

// Initialize loads the embedding client once. Concurrent callers during
// loading wait for the single in-flight load to resolve or fail.
func (e *Embedder) Initialize(ctx context.Context) error {
	e.mu.Lock()
	switch e.state {
	case stateReady:
		e.mu.Unlock()
		return nil
	case stateFailed:
		err := e.loadErr
		e.mu.Unlock()
		return err
	case stateLoading:
		done := e.done
		e.mu.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
		}
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.state == stateFailed {
			return e.loadErr
		}
		return nil
	}

	// Uninitialized: this caller performs the load.
	e.state = stateLoading
	e.done = make(chan struct{})
	done := e.done
	e.mu.Unlock()

	embed, err := e.load(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.state = stateFailed
		e.loadErr = regrag.Errorf(regrag.EUNAVAILABLE, "embedding model unavailable: %v", err)
	} else {
		e.state = stateReady
		e.embed = embed
	}
	close(done)
	if e.state == stateFailed {
		return e.loadErr
	}
	return nil
}

// Embed returns the L2-normalized vector for text. Initialize must have
// completed successfully.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, regrag.Errorf(regrag.EINVALID, "text required")
	}

	vecs, err := e.embedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// BatchEmbed embeds several texts in one API call, preserving input order.
func (e *Embedder) BatchEmbed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	return e.embedBatch(ctx, texts)
}

// Dimensions returns the vector size produced by this embedder.
func (e *Embedder) Dimensions() int {
	return e.dims
}

func (e *Embedder) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	st, embed := e.state, e.embed
	e.mu.Unlock()

	switch st {
	case stateReady:
	case stateFailed:
		return nil, regrag.Errorf(regrag.EUNAVAILABLE, "embedding model unavailable")
	default:
		return nil, regrag.Errorf(regrag.EUNAVAILABLE, "embedder not initialized")
	}

	vecs, err := embed(ctx, texts, int32(e.dims)) // #nosec G115 -- dims is a small constant
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, regrag.Errorf(regrag.EINTERNAL, "expected %d embeddings, got %d", len(texts), len(vecs))
	}

	for i, v := range vecs {
		if len(v) != e.dims {
			return nil, regrag.Errorf(regrag.EDIMENSION, "embedding %d has %d dimensions, want %d", i, len(v), e.dims)
		}
		normalize(v)
	}
	return vecs, nil
}

// loadClient is the default LoadFunc. It creates a Gemini API client using
// GEMINI_API_KEY.
func (e *Embedder) loadClient(ctx context.Context) (EmbedFunc, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, regrag.Errorf(regrag.EINVALID, "GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	model := e.model
	return func(ctx context.Context, texts []string, dims int32) ([][]float32, error) {
		contents := make([]*genai.Content, len(texts))
		for i, t := range texts {
			contents[i] = genai.NewContentFromText(t, "user")
		}

		resp, err := client.Models.EmbedContent(ctx, model, contents, &genai.EmbedContentConfig{
			OutputDimensionality: &dims,
		})
		if err != nil {
			return nil, err
		}
		if resp == nil {
			return nil, regrag.Errorf(regrag.EINTERNAL, "gemini returned nil response")
		}
		if len(resp.Embeddings) != len(texts) {
			return nil, regrag.Errorf(regrag.EINTERNAL, "gemini returned %d embeddings for %d inputs", len(resp.Embeddings), len(texts))
		}

		vecs := make([][]float32, len(resp.Embeddings))
		for i, emb := range resp.Embeddings {
			vecs[i] = emb.Values
		}
		return vecs, nil
	}, nil
}

// normalize scales v to unit length in place. Truncated Gemini embeddings
// are not unit vectors, and unit vectors are what makes dot product equal
// cosine similarity.
func normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
}
