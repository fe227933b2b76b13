// Package retrieve orchestrates the two-tier retrieval flow: semantic
// search over pre-embedded chunks first, live document fetching as the
// fallback.
package retrieve

import (
	"context"
	"log/slog"
	"strings"

	"github.com/carewatch/regrag"
)

// DefaultTopK bounds semantic results when the request does not specify.
const DefaultTopK = 5

// MinDocumentLength filters trivially short fallback documents, which are
// usually error pages or cookie walls.
const MinDocumentLength = 100

// Ensure Retriever implements regrag.RetrievalService at compile time.
var _ regrag.RetrievalService = (*Retriever)(nil)

// Retriever answers retrieval requests. Either path may fail internally
// (network, model load); failures are logged and treated as "no evidence
// from this path" so the caller can always proceed, at worst without
// grounding.
type Retriever struct {
	index         regrag.VectorIndex
	fetcher       regrag.DocumentFetcher
	policies      regrag.PolicySet
	logger        *slog.Logger
	maxConcurrent int
	maxURLs       int
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithLogger sets the logger for swallowed-error warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) { r.logger = logger }
}

// WithMaxConcurrent bounds concurrent fallback fetches per batch.
func WithMaxConcurrent(n int) Option {
	return func(r *Retriever) { r.maxConcurrent = n }
}

// WithMaxURLs bounds the number of fallback URLs fetched per request.
func WithMaxURLs(n int) Option {
	return func(r *Retriever) { r.maxURLs = n }
}

// New creates a Retriever over the given index, fetcher, and policy
// records.
func New(index regrag.VectorIndex, fetcher regrag.DocumentFetcher, policies regrag.PolicySet, opts ...Option) *Retriever {
	r := &Retriever{
		index:         index,
		fetcher:       fetcher,
		policies:      policies,
		logger:        slog.Default(),
		maxConcurrent: 3,
		maxURLs:       regrag.DefaultMaxRelevantURLs,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve runs the RAG path and, when it yields nothing, the document
// fallback. It never fails the request: both paths degrade to the next on
// error, down to Evidence{Source: EvidenceNone}.
func (r *Retriever) Retrieve(ctx context.Context, req regrag.RetrievalRequest) *regrag.Evidence {
	topK := req.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	category := req.Category
	if category == "" {
		category = regrag.CategoryAll
	}

	results, err := r.index.Search(ctx, req.Jurisdiction, req.Question, topK)
	if err != nil {
		// EDIMENSION signals a corrupted embeddings source; log loudly but
		// still degrade so the conversation continues without citations.
		r.logger.Warn("semantic search failed",
			"jurisdiction", req.Jurisdiction,
			"code", regrag.ErrorCode(err),
			"error", err,
		)
		results = nil
	}

	if len(results) > 0 {
		citations := make([]regrag.Citation, len(results))
		for i, res := range results {
			citations[i] = regrag.Citation{
				Source:     res.Metadata.Source,
				DocType:    res.Metadata.DocType,
				Similarity: res.Similarity,
			}
		}
		return &regrag.Evidence{
			Source:    regrag.EvidenceSemantic,
			Context:   regrag.FormatContext(results),
			Citations: citations,
		}
	}

	docs := r.GetRelevantDocuments(ctx, req.Jurisdiction, category)
	if len(docs) == 0 {
		return &regrag.Evidence{Source: regrag.EvidenceNone}
	}

	citations := make([]regrag.Citation, len(docs))
	for i, doc := range docs {
		citations[i] = regrag.Citation{Source: doc.URL, DocType: doc.Type}
	}
	return &regrag.Evidence{
		Source:    regrag.EvidenceDocuments,
		Context:   formatDocuments(docs),
		Citations: citations,
		Documents: docs,
	}
}

// GetRelevantDocuments fetches the source documents behind a
// jurisdiction's policy records, dropping failed fetches and trivially
// short pages. An empty result is a valid outcome, not an error.
func (r *Retriever) GetRelevantDocuments(ctx context.Context, jurisdiction, category string) []*regrag.CachedDocument {
	urls := regrag.SelectRelevantURLs(jurisdiction, category, r.policies, r.maxURLs)
	if len(urls) == 0 {
		return nil
	}

	fetched := r.fetcher.FetchMany(ctx, urls, r.maxConcurrent)

	var docs []*regrag.CachedDocument
	for _, doc := range fetched {
		if doc == nil || doc.IsError() {
			continue
		}
		if len(doc.Text) < MinDocumentLength {
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}

// formatDocuments concatenates fallback documents for prompt assembly,
// headed by their source URLs.
func formatDocuments(docs []*regrag.CachedDocument) string {
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, "## Document: "+doc.URL+"\n\n"+doc.Text)
	}
	return strings.Join(parts, "\n\n")
}
