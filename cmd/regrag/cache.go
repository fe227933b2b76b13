package main

import (
	"fmt"
)

// Run executes the "cache stats" command.
func (c *CacheStatsCmd) Run(deps *Dependencies) error {
	stats := deps.Fetcher.Stats()
	fmt.Fprintf(deps.Stdout, "Cached documents: %d\n", stats.Keys)
	fmt.Fprintf(deps.Stdout, "Hits: %d\n", stats.Hits)
	fmt.Fprintf(deps.Stdout, "Misses: %d\n", stats.Misses)
	return nil
}

// Run executes the "cache clear" command.
func (c *CacheClearCmd) Run(deps *Dependencies) error {
	deps.Fetcher.Clear()
	fmt.Fprintln(deps.Stdout, "Document cache cleared.")
	return nil
}
