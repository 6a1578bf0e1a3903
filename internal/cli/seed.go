package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/booknotes/internal/database"
)

// SeedCommand loads the bundled sample catalog.
type SeedCommand struct {
	catalogFlags
	Reset bool
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)

	cmd.register(fs)
	fs.BoolVar(&cmd.Reset, "reset", false, "Delete every existing book before seeding")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Load the bundled sample books. An already populated catalog is left untouched unless -reset is given.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s seed\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed -reset -db ./demo.db\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *SeedCommand) Run(ctx context.Context) error {
	db, repo, err := cmd.open()
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	created, err := database.Seed(ctx, repo, cmd.Reset)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	fmt.Printf("Seeded %d books into %s\n", created, cmd.DatabasePath)
	return nil
}
