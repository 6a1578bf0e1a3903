package exporters

import "github.com/mrlokans/booknotes/internal/entities"

// Document is a book together with its long-form content. Content may be nil.
type Document struct {
	Book    entities.Book
	Content *entities.Content
}

type BookExporter interface {
	Export(docs []Document) (ExportResult, error)
}

type ExportResult struct {
	BooksProcessed int      `json:"books_processed"`
	BooksFailed    int      `json:"books_failed"`
	Files          []string `json:"files"`
}
