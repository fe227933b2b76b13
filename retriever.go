package regrag

import "context"

// EvidenceSource tags the terminal outcome of a retrieval request.
type EvidenceSource string

// Evidence sources, in order of preference.
const (
	// EvidenceSemantic means the evidence came from vector search.
	EvidenceSemantic EvidenceSource = "semantic"

	// EvidenceDocuments means vector search produced nothing and the
	// evidence came from live-fetched source documents.
	EvidenceDocuments EvidenceSource = "documents"

	// EvidenceNone means neither path produced usable evidence; the caller
	// proceeds without deep-analysis context.
	EvidenceNone EvidenceSource = "none"
)

// Citation attributes one piece of evidence to its source document.
type Citation struct {
	Source     string  `json:"source"`
	DocType    string  `json:"docType"`
	Similarity float64 `json:"similarity,omitempty"`
}

// Evidence is the grounding material for one (jurisdiction, question) pair.
type Evidence struct {
	Source    EvidenceSource    `json:"source"`
	Context   string            `json:"context,omitempty"`
	Citations []Citation        `json:"citations,omitempty"`
	Documents []*CachedDocument `json:"documents,omitempty"`
}

// RetrievalRequest names the inputs of one retrieval.
type RetrievalRequest struct {
	Jurisdiction string
	Question     string

	// Category filters the fallback policy records; CategoryAll when empty.
	Category string

	// TopK bounds semantic results; a sensible default applies when <= 0.
	TopK int
}

// RetrievalService answers retrieval requests with cited evidence. It never
// fails a request for unavailable evidence: internal errors on either path
// degrade to the next path, down to Evidence{Source: EvidenceNone}.
type RetrievalService interface {
	Retrieve(ctx context.Context, req RetrievalRequest) *Evidence
}
