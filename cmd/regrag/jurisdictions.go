package main

import (
	"fmt"
)

// Run executes the jurisdictions command.
func (c *JurisdictionsCmd) Run(deps *Dependencies) error {
	loaded, err := deps.Partitions.Preload(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if len(loaded) == 0 {
		fmt.Fprintln(deps.Stdout, "No embeddings files found. Use 'regembed' to generate them.")
		return nil
	}

	for _, j := range deps.Partitions.Jurisdictions() {
		fmt.Fprintln(deps.Stdout, j)
	}
	return nil
}
