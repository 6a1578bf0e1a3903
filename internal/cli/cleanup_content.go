package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
)

// CleanupContentCommand removes content records that no book refers to.
type CleanupContentCommand struct {
	catalogFlags
}

func NewCleanupContentCommand() *CleanupContentCommand {
	return &CleanupContentCommand{}
}

func (cmd *CleanupContentCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("cleanup-content", flag.ContinueOnError)

	cmd.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s cleanup-content [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete orphaned content records left behind by interrupted writes.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *CleanupContentCommand) Run(ctx context.Context) error {
	db, repo, err := cmd.open()
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	removed, err := repo.DeleteOrphanContent(ctx)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	fmt.Printf("Removed %d orphaned content records\n", removed)
	return nil
}
