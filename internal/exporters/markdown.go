package exporters

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrlokans/booknotes/internal/entities"
	"github.com/mrlokans/booknotes/internal/utils"
)

type MarkdownExporter struct {
	OutputDir string
	Result    ExportResult
}

func NewMarkdownExporter(outputDir string) *MarkdownExporter {
	return &MarkdownExporter{
		OutputDir: outputDir,
		Result:    ExportResult{},
	}
}

func (exporter *MarkdownExporter) ensureDir() error {
	if err := os.MkdirAll(exporter.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	return nil
}

func (exporter *MarkdownExporter) exportDocument(doc Document, used map[string]bool) (string, error) {
	name := FileName(doc.Book.Title)
	if used[name] {
		suffix := doc.Book.ID
		if len(suffix) > 8 {
			suffix = suffix[:8]
		}
		name = strings.TrimSuffix(name, ".md") + "-" + suffix + ".md"
	}
	used[name] = true

	outputPath := filepath.Join(exporter.OutputDir, name)
	content := GenerateMarkdown(&doc.Book, doc.Content)
	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return "", err
	}
	return outputPath, nil
}

// GenerateMarkdown renders a book and its content as a Markdown document with
// YAML front matter. Empty content sections are omitted.
func GenerateMarkdown(book *entities.Book, content *entities.Content) string {
	var builder strings.Builder

	createdAt := book.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: book_notes\n")
	fmt.Fprintf(&builder, "created_at: %s\n", createdAt.Format("2006-01-02"))
	fmt.Fprintf(&builder, "title: %s\n", quote(book.Title))
	fmt.Fprintf(&builder, "author: %s\n", quote(book.Author))
	fmt.Fprintf(&builder, "genres: %s\n", yamlList(book.Genres))
	fmt.Fprintf(&builder, "tags: %s\n", yamlList(book.Tags))
	if book.ReadingTime != "" {
		fmt.Fprintf(&builder, "reading_time: %s\n", quote(book.ReadingTime))
	}
	fmt.Fprintf(&builder, "---\n\n")

	fmt.Fprintf(&builder, "# %s\n\n", book.Title)
	fmt.Fprintf(&builder, "*by %s*\n\n", book.Author)
	if book.Description != "" {
		fmt.Fprintf(&builder, "%s\n\n", book.Description)
	}

	if content != nil {
		writeSection(&builder, "Summary", content.Summary)
		writeSection(&builder, "Key Takeaways", content.Takeaways)
		writeSection(&builder, "Quotes", content.Quotes)
	}

	return strings.TrimRight(builder.String(), "\n") + "\n"
}

func writeSection(builder *strings.Builder, heading, body string) {
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}
	fmt.Fprintf(builder, "## %s\n\n%s\n\n", heading, body)
}

func quote(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "\\\"") + "\""
}

func yamlList(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, quote(v))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// FileName turns a book title into a Markdown file name safe on common file systems.
func FileName(title string) string {
	return utils.SanitizeFilename(title) + ".md"
}

func (exporter *MarkdownExporter) Export(docs []Document) (ExportResult, error) {
	// Reset result state for each export
	exporter.Result = ExportResult{Files: []string{}}

	if err := exporter.ensureDir(); err != nil {
		return ExportResult{}, err
	}

	used := make(map[string]bool, len(docs))
	for _, doc := range docs {
		path, err := exporter.exportDocument(doc, used)
		if err != nil {
			log.Printf("Failed to export book '%s' by %s: %v", doc.Book.Title, doc.Book.Author, err)
			exporter.Result.BooksFailed++
			continue
		}
		exporter.Result.BooksProcessed++
		exporter.Result.Files = append(exporter.Result.Files, path)
	}

	return exporter.Result, nil
}
