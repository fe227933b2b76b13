package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/carewatch/regrag"
)

// Ensure LoggingRetriever implements regrag.RetrievalService.
var _ regrag.RetrievalService = (*LoggingRetriever)(nil)

// LoggingRetriever wraps a RetrievalService with per-request logging of
// which evidence path answered.
type LoggingRetriever struct {
	next   regrag.RetrievalService
	logger *slog.Logger
}

// NewLoggingRetriever creates a new LoggingRetriever.
func NewLoggingRetriever(next regrag.RetrievalService, logger *slog.Logger) *LoggingRetriever {
	return &LoggingRetriever{next: next, logger: logger}
}

// Retrieve delegates to the wrapped service and logs the evidence source.
func (r *LoggingRetriever) Retrieve(ctx context.Context, req regrag.RetrievalRequest) *regrag.Evidence {
	begin := time.Now()
	ev := r.next.Retrieve(ctx, req)
	r.logger.Info("retrieval",
		"jurisdiction", req.Jurisdiction,
		"source", string(ev.Source),
		"citations", len(ev.Citations),
		"duration", time.Since(begin),
	)
	return ev
}
