package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	main "github.com/carewatch/regrag/cmd/regrag"
	"github.com/carewatch/regrag/fs"
	"github.com/carewatch/regrag/mock"
)

func TestJurisdictionsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists loaded jurisdictions", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		chunk := `[{"text":"Bed hold rules.","metadata":{"source":"https://example.gov","doc_type":"regulation"},"embedding":[0.1,0.2]}]`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "texas.json"), []byte(chunk), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "idaho.json"), []byte(chunk), 0o644))

		index := fs.NewIndex(dir, &mock.Embedder{})
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Partitions: index,
		}

		require.NoError(t, (&main.JurisdictionsCmd{}).Run(deps))
		assert.Equal(t, "idaho\ntexas\n", stdout.String())
	})

	t.Run("reports empty directory", func(t *testing.T) {
		t.Parallel()

		index := fs.NewIndex(t.TempDir(), &mock.Embedder{})
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Partitions: index,
		}

		require.NoError(t, (&main.JurisdictionsCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "No embeddings files found")
	})
}
