// Command regembed generates per-jurisdiction embeddings files from
// pre-chunked regulatory text. It is the offline companion to the regrag
// CLI: its output directory is what the vector index reads at query time.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/carewatch/regrag/gemini"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Input        string `arg:"" help:"Path to the chunks JSON file"`
	Jurisdiction string `arg:"" help:"Jurisdiction key the output file is named after"`
	OutDir       string `short:"o" default:"embeddings" help:"Output directory for embeddings files"`
	BatchSize    int    `short:"b" default:"100" help:"Texts per embedding request"`
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Run executes the generator with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("regembed"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 || args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if os.Getenv("GEMINI_API_KEY") == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return fmt.Errorf("GEMINI_API_KEY not set")
	}

	gen := &Generator{
		Embedder:  gemini.NewEmbedder(),
		BatchSize: cli.BatchSize,
	}

	out, err := gen.Generate(ctx, cli.Input, cli.Jurisdiction, cli.OutDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Wrote %s\n", out)
	return nil
}
