// Package regrag provides retrieval grounding for a policy-question chatbot.
// It answers (jurisdiction, question) pairs with the most relevant chunks of
// long regulatory documents: either by semantic search over pre-embedded
// chunks, or, when no embeddings exist for a jurisdiction, by live-fetching
// and cleaning the jurisdiction's source documents.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gemini/, goquery/, http/).
package regrag
