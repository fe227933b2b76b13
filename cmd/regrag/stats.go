package main

import (
	"fmt"
	"sort"

	"github.com/carewatch/regrag"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	if err := deps.Index.LoadPartition(deps.Ctx, c.Jurisdiction); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", regrag.ErrorMessage(err))
		return err
	}

	stats, err := deps.Index.Stats(c.Jurisdiction)
	if err != nil {
		if regrag.ErrorCode(err) == regrag.ENOTFOUND {
			fmt.Fprintf(deps.Stdout, "No embeddings available for %s.\n", c.Jurisdiction)
			return nil
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", regrag.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Jurisdiction: %s\n", stats.Jurisdiction)
	fmt.Fprintf(deps.Stdout, "Chunks: %d\n", stats.TotalChunks)

	types := make([]string, 0, len(stats.DocTypes))
	for t := range stats.DocTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	fmt.Fprintln(deps.Stdout, "Document types:")
	for _, t := range types {
		fmt.Fprintf(deps.Stdout, "  %s: %d\n", t, stats.DocTypes[t])
	}

	fmt.Fprintln(deps.Stdout, "Sources:")
	for _, s := range stats.Sources {
		fmt.Fprintf(deps.Stdout, "  %s\n", s)
	}
	return nil
}
