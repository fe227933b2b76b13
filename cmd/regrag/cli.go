package main

import (
	"context"
	"io"

	"github.com/carewatch/regrag"
)

// PartitionLoader is the subset of the filesystem index used by commands
// that enumerate partitions rather than search them.
type PartitionLoader interface {
	Preload(ctx context.Context) ([]string, error)
	Jurisdictions() []string
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Index      regrag.VectorIndex
	Partitions PartitionLoader
	Fetcher    regrag.DocumentFetcher
	Retriever  regrag.RetrievalService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Search        SearchCmd        `cmd:"" help:"Run a semantic search against a jurisdiction's embeddings"`
	Retrieve      RetrieveCmd      `cmd:"" help:"Retrieve cited evidence for a question, with document fallback"`
	Stats         StatsCmd         `cmd:"" help:"Show embeddings statistics for a jurisdiction"`
	Fetch         FetchCmd         `cmd:"" help:"Fetch and clean a single source document"`
	Cache         CacheCmd         `cmd:"" help:"Inspect or clear the document cache"`
	Jurisdictions JurisdictionsCmd `cmd:"" help:"List jurisdictions with available embeddings"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Jurisdiction string `arg:"" help:"Jurisdiction key (e.g. texas)"`
	Query        string `arg:"" help:"Search query"`
	TopK         int    `short:"k" default:"5" help:"Maximum results"`
}

// RetrieveCmd is the "retrieve" subcommand.
type RetrieveCmd struct {
	Jurisdiction string `arg:"" help:"Jurisdiction key (e.g. texas)"`
	Question     string `arg:"" help:"Question to ground"`
	Category     string `short:"c" default:"all" help:"Policy category filter for the fallback path"`
	TopK         int    `short:"k" default:"5" help:"Maximum semantic results"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	Jurisdiction string `arg:"" help:"Jurisdiction key (e.g. texas)"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL       string `arg:"" help:"Document URL"`
	Extractor string `short:"e" default:"goquery" enum:"goquery,readability,trafilatura" help:"HTML extraction strategy"`
}

// CacheCmd groups the cache subcommands.
type CacheCmd struct {
	Stats CacheStatsCmd `cmd:"" help:"Show document cache hit statistics"`
	Clear CacheClearCmd `cmd:"" help:"Drop all cached documents"`
}

// CacheStatsCmd is the "cache stats" subcommand.
type CacheStatsCmd struct{}

// CacheClearCmd is the "cache clear" subcommand.
type CacheClearCmd struct{}

// JurisdictionsCmd is the "jurisdictions" subcommand.
type JurisdictionsCmd struct{}
