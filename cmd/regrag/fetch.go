package main

import (
	"fmt"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	doc := deps.Fetcher.Fetch(deps.Ctx, c.URL)

	if doc.IsError() {
		fmt.Fprintf(deps.Stderr, "error: %s\n", doc.Err)
		return fmt.Errorf("failed to fetch %q: %s", c.URL, doc.Err)
	}

	fmt.Fprintf(deps.Stderr, "Fetched %s (%s, %d bytes, hash %s)\n", doc.URL, doc.Type, doc.Size, doc.ContentHash)
	fmt.Fprintln(deps.Stdout, doc.Text)
	return nil
}
