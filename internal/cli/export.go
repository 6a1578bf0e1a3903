package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/booknotes/internal/config"
	"github.com/mrlokans/booknotes/internal/exporters"
)

// ExportCommand writes every book as a Markdown file.
type ExportCommand struct {
	catalogFlags
	OutputDir string
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)

	cmd.register(fs)
	fs.StringVar(&cmd.OutputDir, "out", config.DefaultExportDir, "Directory to write Markdown files to")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export every book with its summary, takeaways and quotes as Markdown.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export -out ./vault/books\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.OutputDir == "" {
		fs.Usage()
		return fmt.Errorf("output directory is required")
	}

	return nil
}

func (cmd *ExportCommand) Run(ctx context.Context) error {
	db, repo, err := cmd.open()
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	exporter := exporters.NewCatalogMarkdownExporter(repo, cmd.OutputDir)
	result, err := exporter.ExportAll(ctx)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("\n=== Export Results ===\n")
	fmt.Printf("Books exported: %d\n", result.BooksProcessed)
	fmt.Printf("Books failed: %d\n", result.BooksFailed)
	fmt.Printf("Output directory: %s\n", cmd.OutputDir)

	if result.BooksFailed > 0 {
		return fmt.Errorf("%d books failed to export", result.BooksFailed)
	}
	return nil
}
