package main

import (
	"fmt"

	"github.com/carewatch/regrag"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Index.Search(deps.Ctx, c.Jurisdiction, c.Query, c.TopK)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", regrag.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No results for %q in %s.\n", c.Query, c.Jurisdiction)
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(deps.Stdout, "%d. [%.1f%%] %s (%s)\n   %s\n",
			i+1, r.Similarity*100, r.Metadata.Source, r.Metadata.DocType, r.Text)
	}
	return nil
}
