package exporters

import (
	"context"
	"fmt"
	"log"

	"github.com/mrlokans/booknotes/internal/entities"
)

// CatalogReader is the read side of the catalog repository used for export.
type CatalogReader interface {
	ListAll(ctx context.Context) ([]entities.Book, error)
	GetContent(ctx context.Context, bookID string) (*entities.Content, error)
}

// CatalogMarkdownExporter writes every book in the catalog as a Markdown file.
type CatalogMarkdownExporter struct {
	reader           CatalogReader
	markdownExporter *MarkdownExporter
}

func NewCatalogMarkdownExporter(reader CatalogReader, outputDir string) *CatalogMarkdownExporter {
	return &CatalogMarkdownExporter{
		reader:           reader,
		markdownExporter: NewMarkdownExporter(outputDir),
	}
}

// ExportAll loads all books with their content and exports them.
func (exporter *CatalogMarkdownExporter) ExportAll(ctx context.Context) (ExportResult, error) {
	books, err := exporter.reader.ListAll(ctx)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to list books: %w", err)
	}

	docs := make([]Document, 0, len(books))
	failed := 0
	for _, book := range books {
		content, err := exporter.reader.GetContent(ctx, book.ID)
		if err != nil {
			log.Printf("Failed to load content of '%s': %v", book.Title, err)
			failed++
			continue
		}
		docs = append(docs, Document{Book: book, Content: content})
	}

	result, err := exporter.markdownExporter.Export(docs)
	if err != nil {
		return result, fmt.Errorf("failed to export to markdown: %w", err)
	}
	result.BooksFailed += failed

	log.Printf("Export completed: %d books processed, %d books failed", result.BooksProcessed, result.BooksFailed)

	return result, nil
}
