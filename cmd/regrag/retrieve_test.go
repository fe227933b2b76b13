package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carewatch/regrag"
	main "github.com/carewatch/regrag/cmd/regrag"
	"github.com/carewatch/regrag/mock"
)

func TestRetrieveCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints semantic evidence with citations", func(t *testing.T) {
		t.Parallel()

		retriever := &mock.RetrievalService{
			RetrieveFn: func(_ context.Context, req regrag.RetrievalRequest) *regrag.Evidence {
				assert.Equal(t, "texas", req.Jurisdiction)
				assert.Equal(t, "all", req.Category)
				return &regrag.Evidence{
					Source:  regrag.EvidenceSemantic,
					Context: "[Document 1]\nSource: https://hhs.texas.gov/bed-hold",
					Citations: []regrag.Citation{
						{Source: "https://hhs.texas.gov/bed-hold", DocType: "regulation", Similarity: 0.82},
					},
				}
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Retriever: retriever,
		}

		cmd := &main.RetrieveCmd{Jurisdiction: "texas", Question: "bed hold deadlines", Category: "all", TopK: 5}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "Evidence source: semantic search")
		assert.Contains(t, output, "https://hhs.texas.gov/bed-hold (regulation, 82.0%)")
		assert.Contains(t, output, "[Document 1]")
	})

	t.Run("reports no evidence", func(t *testing.T) {
		t.Parallel()

		retriever := &mock.RetrievalService{
			RetrieveFn: func(_ context.Context, _ regrag.RetrievalRequest) *regrag.Evidence {
				return &regrag.Evidence{Source: regrag.EvidenceNone}
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Retriever: retriever,
		}

		cmd := &main.RetrieveCmd{Jurisdiction: "wyoming", Question: "bed hold", Category: "all", TopK: 5}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No evidence found for wyoming.")
	})

	t.Run("prints document citations without similarity", func(t *testing.T) {
		t.Parallel()

		retriever := &mock.RetrievalService{
			RetrieveFn: func(_ context.Context, _ regrag.RetrievalRequest) *regrag.Evidence {
				return &regrag.Evidence{
					Source:  regrag.EvidenceDocuments,
					Context: "## Document: https://adminrules.idaho.gov/rules/current/16/160310.pdf",
					Citations: []regrag.Citation{
						{Source: "https://adminrules.idaho.gov/rules/current/16/160310.pdf", DocType: "pdf"},
					},
				}
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Retriever: retriever,
		}

		cmd := &main.RetrieveCmd{Jurisdiction: "idaho", Question: "bed hold", Category: "all", TopK: 5}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "Evidence source: fetched documents")
		assert.Contains(t, output, "160310.pdf (pdf)")
		assert.NotContains(t, output, "0.0%")
	})
}
