package database

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mrlokans/booknotes/internal/catalog"
	"github.com/mrlokans/booknotes/internal/entities"
)

//go:embed sampledata/books.json
var sampleBooksJSON []byte

// Seeder is the part of the catalog repository used to load sample data.
type Seeder interface {
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	Create(ctx context.Context, in catalog.CreateInput) (*entities.Book, error)
}

// SampleBooks returns the bundled sample catalog.
func SampleBooks() ([]catalog.CreateInput, error) {
	var books []catalog.CreateInput
	if err := json.Unmarshal(sampleBooksJSON, &books); err != nil {
		return nil, fmt.Errorf("failed to decode sample books: %w", err)
	}
	return books, nil
}

// Seed loads the sample catalog. With reset the existing books are deleted
// first; without it a non-empty catalog is left untouched.
// It returns the number of books created.
func Seed(ctx context.Context, store Seeder, reset bool) (int, error) {
	samples, err := SampleBooks()
	if err != nil {
		return 0, err
	}

	if reset {
		removed, err := store.DeleteAll(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to reset catalog: %w", err)
		}
		log.Printf("Removed %d existing books", removed)
	} else {
		count, err := store.Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count books: %w", err)
		}
		if count > 0 {
			log.Printf("Catalog already has %d books, skipping seed", count)
			return 0, nil
		}
	}

	created := 0
	for _, in := range samples {
		book, err := store.Create(ctx, in)
		if err != nil {
			return created, fmt.Errorf("failed to create %q: %w", in.Title, err)
		}
		log.Printf("Created book %q with id %s", book.Title, book.ID)
		created++
	}

	return created, nil
}
