package catalog

import (
	"fmt"
	"strings"

	"github.com/mrlokans/booknotes/internal/entities"
)

// SearchMode selects which fields participate in free-text matching.
type SearchMode string

const (
	// SearchTitleAuthor matches a case-insensitive substring of title or author.
	SearchTitleAuthor SearchMode = "title_author"

	// SearchExtended additionally matches a substring of description, or the
	// whole query equal to one of the tags or genres (case-insensitive).
	SearchExtended SearchMode = "extended"
)

// ParseSearchMode converts a configuration value into a SearchMode.
// An empty value selects SearchTitleAuthor.
func ParseSearchMode(s string) (SearchMode, error) {
	switch SearchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SearchTitleAuthor:
		return SearchTitleAuthor, nil
	case SearchExtended:
		return SearchExtended, nil
	default:
		return "", fmt.Errorf("unknown search mode %q", s)
	}
}

// Query is the composed filter for list and search operations:
// (text predicate) AND (genre predicate).
type Query struct {
	// Text is matched as a case-insensitive substring. Empty matches everything.
	Text string

	// Genre must be an exact element of a book's genres. Empty or AllGenres
	// disables the genre predicate unless ExactGenre is set.
	Genre string

	// ExactGenre treats Genre literally, so "" and AllGenres match only books
	// carrying that exact element.
	ExactGenre bool

	Mode SearchMode
}

// NewQuery builds a query using the default search mode.
func NewQuery(text, genre string) Query {
	return Query{Text: text, Genre: genre, Mode: SearchTitleAuthor}
}

// HasText reports whether the text predicate constrains anything.
func (q Query) HasText() bool {
	return q.Text != ""
}

// GenreQuery builds a membership-only query for genre.
func GenreQuery(genre string) Query {
	return Query{Genre: genre, ExactGenre: true, Mode: SearchTitleAuthor}
}

// HasGenre reports whether the genre predicate constrains anything.
func (q Query) HasGenre() bool {
	return q.ExactGenre || (q.Genre != "" && q.Genre != AllGenres)
}

// Extended reports whether the broader text predicate is in use.
func (q Query) Extended() bool {
	return q.Mode == SearchExtended
}

// Matches evaluates the query against a single book in memory.
// Case folding uses Fold, which the store also registers as FoldFunction,
// so results agree with the SQL rendering of the same query.
func (q Query) Matches(b entities.Book) bool {
	return q.matchesText(b) && q.matchesGenre(b)
}

func (q Query) matchesGenre(b entities.Book) bool {
	if !q.HasGenre() {
		return true
	}
	return b.HasGenre(q.Genre)
}

func (q Query) matchesText(b entities.Book) bool {
	if !q.HasText() {
		return true
	}
	needle := Fold(q.Text)
	if strings.Contains(Fold(b.Title), needle) || strings.Contains(Fold(b.Author), needle) {
		return true
	}
	if !q.Extended() {
		return false
	}
	if strings.Contains(Fold(b.Description), needle) {
		return true
	}
	return containsFolded(b.Tags, needle) || containsFolded(b.Genres, needle)
}

func containsFolded(values []string, needle string) bool {
	for _, v := range values {
		if Fold(v) == needle {
			return true
		}
	}
	return false
}

// FoldFunction is the SQL name under which the store exposes Fold.
const FoldFunction = "booknotes_fold"

// Fold lower-cases s using Unicode case mapping.
func Fold(s string) string {
	return strings.ToLower(s)
}
