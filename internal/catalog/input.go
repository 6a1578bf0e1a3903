package catalog

import (
	"strings"

	"github.com/mrlokans/booknotes/internal/entities"
)

// BookFields are the mutable scalar fields of a Book.
type BookFields struct {
	Title       string   `json:"title" validate:"required,max=512"`
	Author      string   `json:"author" validate:"required,max=256"`
	Description string   `json:"description" validate:"required"`
	Cover       string   `json:"cover" validate:"max=2048"`
	Genres      []string `json:"genres" validate:"dive,genre"`
	Tags        []string `json:"tags" validate:"dive,max=100"`
	ReadingTime string   `json:"reading_time" validate:"max=64"`
}

// ContentFields are the Markdown fields of a Content record.
type ContentFields struct {
	Summary   string `json:"summary"`
	Takeaways string `json:"takeaways"`
	Quotes    string `json:"quotes"`
}

// CreateInput creates a Book together with its Content.
type CreateInput struct {
	BookFields
	ContentFields
}

// UpdateInput replaces every mutable field of a Book and its Content.
// A nil Tags slice leaves the stored tags untouched.
type UpdateInput struct {
	ID string `json:"id" validate:"required"`
	BookFields
	ContentFields
}

// BookPatch updates only the non-nil fields of a Book.
type BookPatch struct {
	Title       *string   `json:"title,omitempty"`
	Author      *string   `json:"author,omitempty"`
	Description *string   `json:"description,omitempty"`
	Cover       *string   `json:"cover,omitempty"`
	Genres      *[]string `json:"genres,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	ReadingTime *string   `json:"reading_time,omitempty"`
}

// ContentPatch updates only the non-nil fields of a Content.
type ContentPatch struct {
	Summary   *string `json:"summary,omitempty"`
	Takeaways *string `json:"takeaways,omitempty"`
	Quotes    *string `json:"quotes,omitempty"`
}

// FieldsOf extracts the mutable fields of a stored book.
func FieldsOf(b entities.Book) BookFields {
	return BookFields{
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Cover:       b.Cover,
		Genres:      b.Genres,
		Tags:        b.Tags,
		ReadingTime: b.ReadingTime,
	}
}

// Apply returns f with the patch's non-nil fields replaced.
func (p BookPatch) Apply(f BookFields) BookFields {
	if p.Title != nil {
		f.Title = *p.Title
	}
	if p.Author != nil {
		f.Author = *p.Author
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.Cover != nil {
		f.Cover = *p.Cover
	}
	if p.Genres != nil {
		f.Genres = *p.Genres
	}
	if p.Tags != nil {
		f.Tags = *p.Tags
	}
	if p.ReadingTime != nil {
		f.ReadingTime = *p.ReadingTime
	}
	return f
}

// IsEmpty reports whether the patch changes nothing.
func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.Description == nil && p.Cover == nil &&
		p.Genres == nil && p.Tags == nil && p.ReadingTime == nil
}

// Apply writes the patch's non-nil fields into c.
func (p ContentPatch) Apply(c *entities.Content) {
	if p.Summary != nil {
		c.Summary = *p.Summary
	}
	if p.Takeaways != nil {
		c.Takeaways = *p.Takeaways
	}
	if p.Quotes != nil {
		c.Quotes = *p.Quotes
	}
}

// ApplyTo copies the fields onto a book. Tags are only replaced when non-nil.
func (f BookFields) ApplyTo(b *entities.Book) {
	b.Title = f.Title
	b.Author = f.Author
	b.Description = f.Description
	b.Cover = f.Cover
	b.Genres = f.Genres
	if f.Tags != nil {
		b.Tags = f.Tags
	}
	b.ReadingTime = f.ReadingTime
}

// ApplyTo copies the fields onto a content record.
func (f ContentFields) ApplyTo(c *entities.Content) {
	c.Summary = f.Summary
	c.Takeaways = f.Takeaways
	c.Quotes = f.Quotes
}

func (f *BookFields) normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Author = strings.TrimSpace(f.Author)
	f.Description = strings.TrimSpace(f.Description)
	f.Cover = strings.TrimSpace(f.Cover)
	if f.Cover == "" {
		f.Cover = entities.DefaultCover
	}
	f.ReadingTime = strings.TrimSpace(f.ReadingTime)
	f.Genres = NormalizeList(f.Genres)
	if f.Tags != nil {
		f.Tags = NormalizeList(f.Tags)
	}
}

// NormalizeList trims values, drops empty ones and removes duplicates while
// keeping the first occurrence. The result is never nil.
func NormalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
