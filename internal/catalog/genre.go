// Package catalog holds the domain rules of the book catalog: the genre
// vocabulary, the query composer used by list/search operations, write inputs
// and their validation, and the errors repository implementations return.
//
// Storage lives in internal/database/books; this package has no database
// dependency so the same rules can be evaluated in memory.
package catalog

// Genre is a category label from the fixed catalog vocabulary.
type Genre string

const (
	GenreBusiness         Genre = "business"
	GenreSelfHelp         Genre = "self-help"
	GenrePsychology       Genre = "psychology"
	GenreProductivity     Genre = "productivity"
	GenreLeadership       Genre = "leadership"
	GenreFinance          Genre = "finance"
	GenreHealth           Genre = "health"
	GenreTechnology       Genre = "technology"
	GenreEntrepreneurship Genre = "entrepreneurship"
	GenreManagement       Genre = "management"
	GenreLifestyle        Genre = "lifestyle"
	GenreHistory          Genre = "history"
	GenreScience          Genre = "science"
	GenrePhilosophy       Genre = "philosophy"
	GenreSpirituality     Genre = "spirituality"
	GenreEducation        Genre = "education"
	GenreAnthropology     Genre = "anthropology"
)

// AllGenres is the genre selector meaning "no genre filter".
const AllGenres = "all"

var vocabulary = []Genre{
	GenreBusiness,
	GenreSelfHelp,
	GenrePsychology,
	GenreProductivity,
	GenreLeadership,
	GenreFinance,
	GenreHealth,
	GenreTechnology,
	GenreEntrepreneurship,
	GenreManagement,
	GenreLifestyle,
	GenreHistory,
	GenreScience,
	GenrePhilosophy,
	GenreSpirituality,
	GenreEducation,
	GenreAnthropology,
}

var genreLabels = map[Genre]string{
	GenreBusiness:         "Business",
	GenreSelfHelp:         "Self Help",
	GenrePsychology:       "Psychology",
	GenreProductivity:     "Productivity",
	GenreLeadership:       "Leadership",
	GenreFinance:          "Finance",
	GenreHealth:           "Health",
	GenreTechnology:       "Technology",
	GenreEntrepreneurship: "Entrepreneurship",
	GenreManagement:       "Management",
	GenreLifestyle:        "Lifestyle",
	GenreHistory:          "History",
	GenreScience:          "Science",
	GenrePhilosophy:       "Philosophy",
	GenreSpirituality:     "Spirituality",
	GenreEducation:        "Education",
	GenreAnthropology:     "Anthropology",
}

// Genres returns the vocabulary in display order.
func Genres() []Genre {
	out := make([]Genre, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// IsKnownGenre reports whether s is part of the vocabulary (case-sensitive).
func IsKnownGenre(s string) bool {
	_, ok := genreLabels[Genre(s)]
	return ok
}

// Label returns the human-readable name of the genre.
func (g Genre) Label() string {
	if label, ok := genreLabels[g]; ok {
		return label
	}
	return string(g)
}

// GenreCount pairs a genre with the number of books carrying it.
type GenreCount struct {
	Genre Genre  `json:"genre"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}
