package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/booknotes/internal/catalog"
	"github.com/mrlokans/booknotes/internal/entities"
)

// CatalogReader provides read access to books and their content.
// Lookups return a nil result, not an error, when nothing matches.
type CatalogReader interface {
	ListAll(ctx context.Context) ([]entities.Book, error)
	GetByID(ctx context.Context, id string) (*entities.Book, error)
	GetContent(ctx context.Context, bookID string) (*entities.Content, error)
	SearchBooks(ctx context.Context, query string) ([]entities.Book, error)
	GetBooksByGenre(ctx context.Context, genre string) ([]entities.Book, error)
	GetBooksByQueryAndGenre(ctx context.Context, query, genre string) ([]entities.Book, error)
	Count(ctx context.Context) (int64, error)
	ListGenres(ctx context.Context) ([]catalog.GenreCount, error)
}

// CatalogWriter provides the write operations of the catalog.
type CatalogWriter interface {
	Create(ctx context.Context, in catalog.CreateInput) (*entities.Book, error)
	UpdateBookAndContent(ctx context.Context, in catalog.UpdateInput) (*entities.Book, *entities.Content, error)
	UpdateBook(ctx context.Context, id string, patch catalog.BookPatch) (*entities.Book, error)
	UpdateContent(ctx context.Context, bookID string, patch catalog.ContentPatch) (*entities.Content, error)
	DeleteBook(ctx context.Context, id string) error
}

// CatalogStore combines read and write access.
type CatalogStore interface {
	CatalogReader
	CatalogWriter
}

// ContentCleaner removes content no book refers to.
type ContentCleaner interface {
	DeleteOrphanContent(ctx context.Context) (int64, error)
}

// CleanupQueue enqueues background content cleanup and reports task status.
type CleanupQueue interface {
	EnqueueOrphanContentCleanup(ctx context.Context, reason string) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// Pinger checks connectivity of a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}
