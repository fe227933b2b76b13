package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/carewatch/regrag"
)

// Ensure LoggingIndex implements regrag.VectorIndex.
var _ regrag.VectorIndex = (*LoggingIndex)(nil)

// LoggingIndex wraps a VectorIndex with search and load logging.
type LoggingIndex struct {
	next   regrag.VectorIndex
	logger *slog.Logger
}

// NewLoggingIndex creates a new LoggingIndex.
func NewLoggingIndex(next regrag.VectorIndex, logger *slog.Logger) *LoggingIndex {
	return &LoggingIndex{next: next, logger: logger}
}

// LoadPartition delegates to the wrapped index and logs the outcome.
func (i *LoggingIndex) LoadPartition(ctx context.Context, jurisdiction string) error {
	begin := time.Now()
	err := i.next.LoadPartition(ctx, jurisdiction)
	if err != nil {
		i.logger.Warn("partition load failed",
			"jurisdiction", jurisdiction,
			"code", regrag.ErrorCode(err),
			"error", err,
			"duration", time.Since(begin),
		)
		return err
	}
	i.logger.Info("partition load",
		"jurisdiction", jurisdiction,
		"duration", time.Since(begin),
	)
	return nil
}

// Search delegates to the wrapped index and logs result counts.
func (i *LoggingIndex) Search(ctx context.Context, jurisdiction, query string, topK int) ([]regrag.SearchResult, error) {
	begin := time.Now()
	results, err := i.next.Search(ctx, jurisdiction, query, topK)
	if err != nil {
		i.logger.Warn("semantic search failed",
			"jurisdiction", jurisdiction,
			"code", regrag.ErrorCode(err),
			"error", err,
			"duration", time.Since(begin),
		)
		return nil, err
	}
	i.logger.Info("semantic search",
		"jurisdiction", jurisdiction,
		"topK", topK,
		"results", len(results),
		"duration", time.Since(begin),
	)
	return results, nil
}

// Stats delegates to the wrapped index.
func (i *LoggingIndex) Stats(jurisdiction string) (*regrag.PartitionStats, error) {
	return i.next.Stats(jurisdiction)
}
