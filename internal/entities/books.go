package entities

import (
	"time"
)

// DefaultCover is used for books created without a cover.
const DefaultCover = "/placeholder.svg?height=400&width=300"

type Book struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"index;size:512;not null" json:"title"`
	Author      string    `gorm:"index;size:256;not null" json:"author"`
	Description string    `gorm:"type:text" json:"description"`
	Cover       string    `gorm:"size:2048" json:"cover"`
	Genres      []string  `gorm:"serializer:json;type:text" json:"genres"`
	Tags        []string  `gorm:"serializer:json;type:text" json:"tags"`
	ReadingTime string    `gorm:"size:64" json:"reading_time"` // Display string, e.g. "10 min read"
	ContentID   string    `gorm:"uniqueIndex;size:36" json:"content_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Content holds the long-form Markdown attached to exactly one Book.
type Content struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Summary   string    `gorm:"type:text" json:"summary"`
	Takeaways string    `gorm:"type:text" json:"takeaways"`
	Quotes    string    `gorm:"type:text" json:"quotes"`
	BookID    string    `gorm:"index;size:36" json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

func (Content) TableName() string {
	return "contents"
}

// HasGenre reports whether genre is an exact element of the book's genres.
func (b Book) HasGenre(genre string) bool {
	for _, g := range b.Genres {
		if g == genre {
			return true
		}
	}
	return false
}
