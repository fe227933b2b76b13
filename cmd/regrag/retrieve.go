package main

import (
	"fmt"

	"github.com/carewatch/regrag"
)

// Run executes the retrieve command.
func (c *RetrieveCmd) Run(deps *Dependencies) error {
	ev := deps.Retriever.Retrieve(deps.Ctx, regrag.RetrievalRequest{
		Jurisdiction: c.Jurisdiction,
		Question:     c.Question,
		Category:     c.Category,
		TopK:         c.TopK,
	})

	switch ev.Source {
	case regrag.EvidenceNone:
		fmt.Fprintf(deps.Stdout, "No evidence found for %s.\n", c.Jurisdiction)
		return nil
	case regrag.EvidenceSemantic:
		fmt.Fprintln(deps.Stdout, "Evidence source: semantic search")
	case regrag.EvidenceDocuments:
		fmt.Fprintln(deps.Stdout, "Evidence source: fetched documents")
	}

	fmt.Fprintln(deps.Stdout, "Citations:")
	for _, cit := range ev.Citations {
		if cit.Similarity > 0 {
			fmt.Fprintf(deps.Stdout, "  %s (%s, %.1f%%)\n", cit.Source, cit.DocType, cit.Similarity*100)
		} else {
			fmt.Fprintf(deps.Stdout, "  %s (%s)\n", cit.Source, cit.DocType)
		}
	}

	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, ev.Context)
	return nil
}
