package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/carewatch/regrag"
	"github.com/carewatch/regrag/fs"
	"github.com/carewatch/regrag/gemini"
	"github.com/carewatch/regrag/goquery"
	"github.com/carewatch/regrag/htmltomarkdown"
	reghttp "github.com/carewatch/regrag/http"
	"github.com/carewatch/regrag/readability"
	"github.com/carewatch/regrag/retrieve"
	regslog "github.com/carewatch/regrag/slog"
	"github.com/carewatch/regrag/trafilatura"
)

func main() {
	ctx := context.Background()

	// Local development keeps GEMINI_API_KEY in a .env file.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Directory holding per-jurisdiction embeddings files. Set before
	// calling Run().
	EmbeddingsDir string

	// Path to the structured policy records JSON. Set before calling Run().
	PoliciesPath string
}

// NewMain returns a new instance of Main with defaults from the
// environment.
func NewMain() *Main {
	return &Main{
		EmbeddingsDir: envOr("REGRAG_EMBEDDINGS_DIR", "embeddings"),
		PoliciesPath:  envOr("REGRAG_POLICIES", "policies.json"),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("regrag"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'regrag --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	embedder := gemini.NewEmbedder()
	index := fs.NewIndex(m.EmbeddingsDir, embedder)
	deps.Index = regslog.NewLoggingIndex(index, logger)
	deps.Partitions = index

	converter := htmltomarkdown.NewConverter()
	var extractor regrag.Extractor
	switch cli.Fetch.Extractor {
	case "readability":
		extractor = readability.NewExtractor(converter)
	case "trafilatura":
		extractor = trafilatura.NewExtractor(converter)
	default:
		extractor = goquery.NewExtractor()
	}

	cache := reghttp.NewCache(extractor,
		reghttp.WithLimiter(reghttp.NewDomainLimiter(1.0)),
	)
	deps.Fetcher = regslog.NewLoggingFetcher(cache, logger)

	if cmd == "retrieve" {
		policies, err := loadPolicies(m.PoliciesPath)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Set REGRAG_POLICIES to point at the policy records file\n")
			return err
		}
		deps.Retriever = regslog.NewLoggingRetriever(
			retrieve.New(deps.Index, deps.Fetcher, policies, retrieve.WithLogger(logger)),
			logger,
		)
	}

	return kongCtx.Run(deps)
}

// loadPolicies reads the policy records JSON. A missing file yields an
// empty set so retrieval still works for jurisdictions with embeddings.
func loadPolicies(path string) (regrag.PolicySet, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return regrag.PolicySet{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read policy records at %q: %w", path, err)
	}

	var policies regrag.PolicySet
	if err := json.Unmarshal(data, &policies); err != nil {
		return nil, fmt.Errorf("failed to parse policy records at %q: %w", path, err)
	}
	return policies, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
