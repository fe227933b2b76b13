package trafilatura_test

import (
	"testing"

	"github.com/carewatch/regrag"
	"github.com/carewatch/regrag/htmltomarkdown"
	"github.com/carewatch/regrag/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements regrag.Extractor at compile time.
var _ regrag.Extractor = (*trafilatura.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content and title", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Medicaid Provider Handbook</title>
<meta property="og:title" content="Medicaid Provider Handbook">
</head>
<body>
<nav>Navigation here</nav>
<main>
<h1>Bed Hold Payments</h1>
<p>The department reimburses bed hold days for hospitalized residents for up
to ten consecutive days per stay, subject to prior authorization.</p>
</main>
<footer>Footer content</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor(htmltomarkdown.NewConverter())
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Medicaid Provider Handbook", result.Title)
		assert.Contains(t, result.Text, "bed hold days")
		assert.NotContains(t, result.Text, "Navigation here")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor(htmltomarkdown.NewConverter())
		_, err := ext.Extract("")

		require.Error(t, err)
		assert.Equal(t, regrag.EINVALID, regrag.ErrorCode(err))
	})
}
