// Package database owns the SQLite connection of the catalog.
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── seed.go          # Bundled sample catalog
//	└── books/           # Catalog repository (books and their content)
//
// Typical wiring:
//
//	db, err := database.NewDatabase("./booknotes.db", "warn")
//	repo := books.NewRepository(db.DB, catalog.NewValidator(true), catalog.SearchTitleAuthor)
//	book, err := repo.GetByID(ctx, id)
package database
