package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booknotes/internal/catalog"
	"github.com/mrlokans/booknotes/internal/entities"
	"github.com/mrlokans/booknotes/internal/exporters"
)

type BooksController struct {
	reader CatalogReader
	writer CatalogWriter
}

// NewBooksController creates a controller. writer may be nil, in which case
// the router only registers the read endpoints.
func NewBooksController(reader CatalogReader, writer CatalogWriter) *BooksController {
	return &BooksController{
		reader: reader,
		writer: writer,
	}
}

// BookResponse is a book together with its content.
type BookResponse struct {
	Book    *entities.Book    `json:"book"`
	Content *entities.Content `json:"content,omitempty"`
}

// ListBooks handles GET /api/books?q=&genre=
// Both parameters are optional; together they pick the catalog operation.
func (controller *BooksController) ListBooks(c *gin.Context) {
	ctx := c.Request.Context()
	// Values reach the store as given; trimming only picks the operation.
	query := c.Query("q")
	genre := c.Query("genre")
	hasQuery := strings.TrimSpace(query) != ""
	trimmedGenre := strings.TrimSpace(genre)
	filterGenre := trimmedGenre != "" && trimmedGenre != catalog.AllGenres

	var books []entities.Book
	var err error
	switch {
	case hasQuery && filterGenre:
		books, err = controller.reader.GetBooksByQueryAndGenre(ctx, query, genre)
	case hasQuery:
		books, err = controller.reader.SearchBooks(ctx, query)
	case filterGenre:
		books, err = controller.reader.GetBooksByGenre(ctx, genre)
	default:
		books, err = controller.reader.ListAll(ctx)
	}
	if err != nil {
		respondCatalogError(c, err, "list books")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

func (controller *BooksController) GetBookStats(c *gin.Context) {
	count, err := controller.reader.Count(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err, "book stats")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"total_books": count})
}

// ListGenres handles GET /api/genres
func (controller *BooksController) ListGenres(c *gin.Context) {
	genres, err := controller.reader.ListGenres(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err, "list genres")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"genres": genres})
}

// GetBook handles GET /api/books/:id
func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.reader.GetByID(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err, "get book")
		return
	}
	if book == nil {
		respondNotFound(c, "book")
		return
	}

	c.IndentedJSON(http.StatusOK, book)
}

// GetContent handles GET /api/books/:id/content
func (controller *BooksController) GetContent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	content, err := controller.reader.GetContent(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err, "get content")
		return
	}
	if content == nil {
		respondNotFound(c, "content")
		return
	}

	c.IndentedJSON(http.StatusOK, content)
}

// DownloadMarkdown handles GET /api/books/:id/markdown
// Serves the same document the export command writes to disk.
func (controller *BooksController) DownloadMarkdown(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	book, err := controller.reader.GetByID(ctx, id)
	if err != nil {
		respondCatalogError(c, err, "markdown book")
		return
	}
	if book == nil {
		respondNotFound(c, "book")
		return
	}

	content, err := controller.reader.GetContent(ctx, id)
	if err != nil {
		respondCatalogError(c, err, "markdown content")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exporters.FileName(book.Title)))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(exporters.GenerateMarkdown(book, content)))
}

// CreateBook handles POST /api/books
func (controller *BooksController) CreateBook(c *gin.Context) {
	var in catalog.CreateInput
	if !bindJSON(c, &in) {
		return
	}

	book, err := controller.writer.Create(c.Request.Context(), in)
	if err != nil {
		respondCatalogError(c, err, "create book")
		return
	}

	respondCreated(c, book)
}

// updateBookRequest is the PUT body; the id comes from the path.
type updateBookRequest struct {
	catalog.BookFields
	catalog.ContentFields
}

// UpdateBook handles PUT /api/books/:id
// Replaces every field of the book and its content.
func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, content, err := controller.writer.UpdateBookAndContent(c.Request.Context(), catalog.UpdateInput{
		ID:            id,
		BookFields:    req.BookFields,
		ContentFields: req.ContentFields,
	})
	if err != nil {
		respondCatalogError(c, err, "update book")
		return
	}

	c.IndentedJSON(http.StatusOK, BookResponse{Book: book, Content: content})
}

// PatchBook handles PATCH /api/books/:id
func (controller *BooksController) PatchBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var patch catalog.BookPatch
	if !bindJSON(c, &patch) {
		return
	}
	if patch.IsEmpty() {
		respondBadRequest(c, "no fields to update")
		return
	}

	book, err := controller.writer.UpdateBook(c.Request.Context(), id, patch)
	if err != nil {
		respondCatalogError(c, err, "patch book")
		return
	}

	c.IndentedJSON(http.StatusOK, book)
}

// PatchContent handles PATCH /api/books/:id/content
func (controller *BooksController) PatchContent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var patch catalog.ContentPatch
	if !bindJSON(c, &patch) {
		return
	}

	content, err := controller.writer.UpdateContent(c.Request.Context(), id, patch)
	if err != nil {
		respondCatalogError(c, err, "patch content")
		return
	}

	c.IndentedJSON(http.StatusOK, content)
}

// DeleteBook handles DELETE /api/books/:id
// Removes the book and its content.
func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.writer.DeleteBook(c.Request.Context(), id); err != nil {
		respondCatalogError(c, err, "delete book")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "book deleted", Data: gin.H{"id": id}})
}
