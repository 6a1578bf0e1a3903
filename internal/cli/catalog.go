package cli

import (
	"flag"
	"fmt"
	"log"

	"github.com/mrlokans/booknotes/internal/catalog"
	"github.com/mrlokans/booknotes/internal/config"
	"github.com/mrlokans/booknotes/internal/database"
	"github.com/mrlokans/booknotes/internal/database/books"
)

// catalogFlags are the database options shared by every command.
type catalogFlags struct {
	DatabasePath string
	LogLevel     string
}

func (f *catalogFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")
	fs.StringVar(&f.LogLevel, "log-level", "warn", "SQL log level: silent, error, warn or info")
}

// open connects to the catalog database. The caller must close the returned
// database.
func (f *catalogFlags) open() (*database.Database, *books.Repository, error) {
	db, err := database.NewDatabase(f.DatabasePath, f.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, books.NewRepository(db.DB, catalog.NewValidator(true), catalog.SearchTitleAuthor), nil
}

func closeDatabase(db *database.Database) {
	if err := db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
