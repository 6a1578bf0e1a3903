// Package books is the gorm implementation of the catalog repository.
//
// Every Book owns exactly one Content record. Identifiers for both rows are
// generated before insertion, so a book and its content are written together
// in one transaction and never reference a placeholder.
//
// # Errors
//
// Lookups (GetByID, GetContent) report absence as a nil result. Mutations of
// a missing book return catalog.ErrNotFound, rejected input returns a
// *catalog.ValidationError, and any storage failure is logged and returned as
// catalog.ErrOperationFailed without the underlying cause.
//
// # Usage
//
//	repo := books.NewRepository(db, catalog.NewValidator(true), catalog.SearchTitleAuthor)
//	book, err := repo.Create(ctx, input)
package books

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/booknotes/internal/catalog"
	"github.com/mrlokans/booknotes/internal/entities"
)

// Operation names, used in errors, logs and metrics.
const (
	OpListAll              = "list books"
	OpGetByID              = "get book"
	OpGetContent           = "get content"
	OpCreate               = "create book"
	OpUpdateBookAndContent = "update book and content"
	OpUpdateBook           = "update book"
	OpUpdateContent        = "update content"
	OpDeleteBook           = "delete book"
	OpSearch               = "search books"
	OpGetByGenre           = "get books by genre"
	OpQuery                = "query books"
	OpCount                = "count books"
	OpListGenres           = "list genres"
	OpDeleteOrphanContent  = "delete orphan content"
	OpDeleteAll            = "delete all books"
)

// Observer receives the outcome of every repository operation.
type Observer interface {
	ObserveOperation(op string, duration time.Duration, err error)
}

// Repository handles all book and content database operations.
type Repository struct {
	db        *gorm.DB
	validator *catalog.Validator
	mode      catalog.SearchMode
	observer  Observer
}

// NewRepository creates a new catalog repository. mode selects the text
// predicate used by SearchBooks and GetBooksByQueryAndGenre.
func NewRepository(db *gorm.DB, validator *catalog.Validator, mode catalog.SearchMode) *Repository {
	if validator == nil {
		validator = catalog.NewValidator(true)
	}
	if mode == "" {
		mode = catalog.SearchTitleAuthor
	}
	return &Repository{db: db, validator: validator, mode: mode}
}

// SetObserver registers an observer for operation outcomes.
func (r *Repository) SetObserver(o Observer) {
	r.observer = o
}

// SearchMode returns the text predicate in use.
func (r *Repository) SearchMode() catalog.SearchMode {
	return r.mode
}

// ListAll returns every book ordered by title.
func (r *Repository) ListAll(ctx context.Context) (books []entities.Book, err error) {
	defer r.observe(OpListAll, time.Now(), &err)
	return r.find(ctx, OpListAll, catalog.Query{Mode: r.mode})
}

// GetByID returns the book with the given id, or nil if there is none.
func (r *Repository) GetByID(ctx context.Context, id string) (book *entities.Book, err error) {
	defer r.observe(OpGetByID, time.Now(), &err)

	book, err = r.loadBook(r.db.WithContext(ctx), id)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail(OpGetByID, err)
	}
	return book, nil
}

// GetContent returns the content linked to the given book, or nil if the
// book does not exist or has no content.
func (r *Repository) GetContent(ctx context.Context, bookID string) (content *entities.Content, err error) {
	defer r.observe(OpGetContent, time.Now(), &err)

	db := r.db.WithContext(ctx)
	book, err := r.loadBook(db, bookID)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail(OpGetContent, err)
	}
	if book.ContentID == "" {
		return nil, nil
	}

	var c entities.Content
	err = db.Where("id = ?", book.ContentID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail(OpGetContent, err)
	}
	return &c, nil
}

// Create inserts a book together with its content.
func (r *Repository) Create(ctx context.Context, in catalog.CreateInput) (book *entities.Book, err error) {
	defer r.observe(OpCreate, time.Now(), &err)

	if err := r.validator.ValidateCreate(&in); err != nil {
		return nil, err
	}

	b := entities.Book{ID: uuid.NewString(), ContentID: uuid.NewString()}
	in.BookFields.ApplyTo(&b)
	if b.Tags == nil {
		b.Tags = []string{}
	}

	c := entities.Content{ID: b.ContentID, BookID: b.ID}
	in.ContentFields.ApplyTo(&c)

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&c).Error; err != nil {
			return err
		}
		return tx.Create(&b).Error
	})
	if err != nil {
		return nil, r.fail(OpCreate, err)
	}
	return &b, nil
}

// UpdateBookAndContent replaces every mutable field of a book and its content.
// The book id and content id never change.
func (r *Repository) UpdateBookAndContent(ctx context.Context, in catalog.UpdateInput) (book *entities.Book, content *entities.Content, err error) {
	defer r.observe(OpUpdateBookAndContent, time.Now(), &err)

	if err := r.validator.ValidateUpdate(&in); err != nil {
		return nil, nil, err
	}

	var b *entities.Book
	var c *entities.Content
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if b, err = r.loadBook(tx, in.ID); err != nil {
			return err
		}
		in.BookFields.ApplyTo(b)
		if err := tx.Save(b).Error; err != nil {
			return err
		}

		if c, err = r.contentOf(tx, b); err != nil {
			return err
		}
		in.ContentFields.ApplyTo(c)
		return tx.Save(c).Error
	})
	if err != nil {
		return nil, nil, r.fail(OpUpdateBookAndContent, err)
	}
	return b, c, nil
}

// UpdateBook changes only the fields set in the patch.
func (r *Repository) UpdateBook(ctx context.Context, id string, patch catalog.BookPatch) (book *entities.Book, err error) {
	defer r.observe(OpUpdateBook, time.Now(), &err)

	var b *entities.Book
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if b, err = r.loadBook(tx, id); err != nil {
			return err
		}
		if patch.IsEmpty() {
			return nil
		}

		fields := patch.Apply(catalog.FieldsOf(*b))
		if err := r.validator.ValidateFields(&fields); err != nil {
			return err
		}
		fields.ApplyTo(b)
		return tx.Save(b).Error
	})
	if err != nil {
		return nil, r.fail(OpUpdateBook, err)
	}
	return b, nil
}

// UpdateContent changes only the content fields set in the patch.
func (r *Repository) UpdateContent(ctx context.Context, bookID string, patch catalog.ContentPatch) (content *entities.Content, err error) {
	defer r.observe(OpUpdateContent, time.Now(), &err)

	var c *entities.Content
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := r.loadBook(tx, bookID)
		if err != nil {
			return err
		}
		if c, err = r.contentOf(tx, b); err != nil {
			return err
		}
		patch.Apply(c)
		return tx.Save(c).Error
	})
	if err != nil {
		return nil, r.fail(OpUpdateContent, err)
	}
	return c, nil
}

// DeleteBook removes a book and every content record that belongs to it.
func (r *Repository) DeleteBook(ctx context.Context, id string) (err error) {
	defer r.observe(OpDeleteBook, time.Now(), &err)

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := r.loadBook(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("book_id = ? OR id = ?", b.ID, b.ContentID).Delete(&entities.Content{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", b.ID).Delete(&entities.Book{}).Error
	})
	return r.fail(OpDeleteBook, err)
}

// SearchBooks returns the books whose text matches query, ordered by title.
func (r *Repository) SearchBooks(ctx context.Context, query string) (books []entities.Book, err error) {
	defer r.observe(OpSearch, time.Now(), &err)
	return r.find(ctx, OpSearch, catalog.Query{Text: query, Mode: r.mode})
}

// GetBooksByGenre returns the books whose genres contain exactly genre,
// ordered by title. "" and catalog.AllGenres are matched literally.
func (r *Repository) GetBooksByGenre(ctx context.Context, genre string) (books []entities.Book, err error) {
	defer r.observe(OpGetByGenre, time.Now(), &err)
	return r.find(ctx, OpGetByGenre, catalog.GenreQuery(genre))
}

// GetBooksByQueryAndGenre combines the text and genre predicates. A genre of
// catalog.AllGenres applies no genre constraint.
func (r *Repository) GetBooksByQueryAndGenre(ctx context.Context, query, genre string) (books []entities.Book, err error) {
	defer r.observe(OpQuery, time.Now(), &err)
	return r.find(ctx, OpQuery, catalog.Query{Text: query, Genre: genre, Mode: r.mode})
}

// Count returns the number of books in the catalog.
func (r *Repository) Count(ctx context.Context) (count int64, err error) {
	defer r.observe(OpCount, time.Now(), &err)

	if err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error; err != nil {
		return 0, r.fail(OpCount, err)
	}
	return count, nil
}

type genreRow struct {
	Genre string
	Count int64
}

// ListGenres returns the vocabulary with per-genre book counts. Genres stored
// outside the vocabulary follow in name order.
func (r *Repository) ListGenres(ctx context.Context) (genres []catalog.GenreCount, err error) {
	defer r.observe(OpListGenres, time.Now(), &err)

	var rows []genreRow
	err = r.db.WithContext(ctx).
		Raw("SELECT json_each.value AS genre, COUNT(*) AS count FROM books, json_each(books.genres) GROUP BY json_each.value").
		Scan(&rows).Error
	if err != nil {
		return nil, r.fail(OpListGenres, err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Genre] = row.Count
	}

	vocabulary := catalog.Genres()
	genres = make([]catalog.GenreCount, 0, len(vocabulary))
	for _, g := range vocabulary {
		genres = append(genres, catalog.GenreCount{Genre: g, Label: g.Label(), Count: counts[string(g)]})
		delete(counts, string(g))
	}

	extra := make([]string, 0, len(counts))
	for name := range counts {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		g := catalog.Genre(name)
		genres = append(genres, catalog.GenreCount{Genre: g, Label: g.Label(), Count: counts[name]})
	}
	return genres, nil
}

// DeleteOrphanContent removes content records no book refers to, either by
// book id or by content id. It returns the number of records removed.
func (r *Repository) DeleteOrphanContent(ctx context.Context) (removed int64, err error) {
	defer r.observe(OpDeleteOrphanContent, time.Now(), &err)

	result := r.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM books WHERE books.id = contents.book_id)").
		Where("NOT EXISTS (SELECT 1 FROM books WHERE books.content_id = contents.id)").
		Delete(&entities.Content{})
	if result.Error != nil {
		return 0, r.fail(OpDeleteOrphanContent, result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteAll empties the catalog and returns the number of books removed.
func (r *Repository) DeleteAll(ctx context.Context) (removed int64, err error) {
	defer r.observe(OpDeleteAll, time.Now(), &err)

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entities.Content{}).Error; err != nil {
			return err
		}
		result := tx.Where("1 = 1").Delete(&entities.Book{})
		removed = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, r.fail(OpDeleteAll, err)
	}
	return removed, nil
}

func (r *Repository) find(ctx context.Context, op string, q catalog.Query) ([]entities.Book, error) {
	books := make([]entities.Book, 0)
	err := r.db.WithContext(ctx).Scopes(matching(q), orderedByTitle).Find(&books).Error
	if err != nil {
		return nil, r.fail(op, err)
	}
	return books, nil
}

func (r *Repository) loadBook(db *gorm.DB, id string) (*entities.Book, error) {
	var b entities.Book
	err := db.Where("id = ?", id).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalog.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// contentOf loads the content linked to b. A missing record is recreated
// under the book's content id so the link is restored.
func (r *Repository) contentOf(db *gorm.DB, b *entities.Book) (*entities.Content, error) {
	if b.ContentID == "" {
		b.ContentID = uuid.NewString()
		if err := db.Model(b).Update("content_id", b.ContentID).Error; err != nil {
			return nil, err
		}
	}

	var c entities.Content
	err := db.Where("id = ?", b.ContentID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("catalog: content %s of book %s is missing, recreating it", b.ContentID, b.ID)
		return &entities.Content{ID: b.ContentID, BookID: b.ID}, nil
	}
	if err != nil {
		return nil, err
	}
	c.BookID = b.ID
	return &c, nil
}

// fail hides storage errors behind catalog.ErrOperationFailed. Not-found and
// validation errors are returned unchanged.
func (r *Repository) fail(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, catalog.ErrNotFound) || errors.Is(err, catalog.ErrInvalidInput) {
		return err
	}
	log.Printf("catalog: %s failed: %v", op, err)
	return catalog.Failed(op)
}

func (r *Repository) observe(op string, start time.Time, err *error) {
	if r.observer != nil {
		r.observer.ObserveOperation(op, time.Since(start), *err)
	}
}
