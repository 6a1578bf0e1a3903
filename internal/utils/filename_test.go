package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "keeps ordinary titles",
			input:    "Atomic Habits",
			expected: "Atomic Habits",
		},
		{
			name:     "removes invalid characters",
			input:    `file<>"|?*name`,
			expected: "filename",
		},
		{
			name:     "turns separators into dashes",
			input:    `AC/DC: Live\Tour`,
			expected: "AC-DC- Live-Tour",
		},
		{
			name:     "replaces newlines and tabs with spaces",
			input:    "file\nname\twith\rspaces",
			expected: "file name with spaces",
		},
		{
			name:     "collapses multiple spaces",
			input:    "file   name  with    spaces",
			expected: "file name with spaces",
		},
		{
			name:     "trims dots",
			input:    " ..hidden title.. ",
			expected: "hidden title",
		},
		{
			name:     "empty becomes untitled",
			input:    "  ...  ",
			expected: "untitled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestSanitizeFilename_Length(t *testing.T) {
	long := strings.Repeat("a", 250)
	assert.Len(t, SanitizeFilename(long), maxFilenameLength)

	// Multi-byte runes are never split
	accented := strings.Repeat("é", 150)
	result := SanitizeFilename(accented)
	assert.LessOrEqual(t, len(result), maxFilenameLength)
	assert.True(t, utf8.ValidString(result))
}
