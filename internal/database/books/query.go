package books

import (
	"gorm.io/gorm"

	"github.com/mrlokans/booknotes/internal/catalog"
)

// Text predicates compare folded values with instr, so the query is a literal
// substring and LIKE wildcards need no escaping. The fold function takes TEXT
// only, hence the coalesce around nullable values.
const (
	fold = catalog.FoldFunction

	titleAuthorClause = `(instr(` + fold + `(coalesce(books.title, '')), ?) > 0 OR instr(` + fold + `(coalesce(books.author, '')), ?) > 0)`

	extendedClause = `(instr(` + fold + `(coalesce(books.title, '')), ?) > 0` +
		` OR instr(` + fold + `(coalesce(books.author, '')), ?) > 0` +
		` OR instr(` + fold + `(coalesce(books.description, '')), ?) > 0` +
		` OR EXISTS (SELECT 1 FROM json_each(books.tags) WHERE ` + fold + `(coalesce(json_each.value, '')) = ?)` +
		` OR EXISTS (SELECT 1 FROM json_each(books.genres) WHERE ` + fold + `(coalesce(json_each.value, '')) = ?))`

	genreClause = `EXISTS (SELECT 1 FROM json_each(books.genres) WHERE json_each.value = ?)`

	titleOrder = "books.title ASC, books.id ASC"
)

// matching renders a catalog query as a gorm scope. It must select exactly
// the books for which q.Matches reports true.
func matching(q catalog.Query) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.HasText() {
			needle := catalog.Fold(q.Text)
			if q.Extended() {
				db = db.Where(extendedClause, needle, needle, needle, needle, needle)
			} else {
				db = db.Where(titleAuthorClause, needle, needle)
			}
		}
		if q.HasGenre() {
			db = db.Where(genreClause, q.Genre)
		}
		return db
	}
}

func orderedByTitle(db *gorm.DB) *gorm.DB {
	return db.Order(titleOrder)
}
