package utils

import (
	"regexp"
	"strings"
)

var (
	// Path separators become dashes so "AC/DC" stays readable
	separatorChars = regexp.MustCompile(`[/\\:]`)
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>"|?*]`)
	// Runs of whitespace, including newlines and tabs
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// maxFilenameLength leaves room for an extension within the common 255 limit.
const maxFilenameLength = 200

// SanitizeFilename turns an arbitrary title into a file name that is valid on
// common file systems. The result is never empty.
func SanitizeFilename(filename string) string {
	filename = separatorChars.ReplaceAllString(filename, "-")
	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = whitespaceRuns.ReplaceAllString(filename, " ")

	// Leading dots hide files, trailing dots are dropped on Windows
	filename = strings.Trim(strings.TrimSpace(filename), ".")
	filename = strings.TrimSpace(filename)

	if len(filename) > maxFilenameLength {
		filename = strings.TrimSpace(truncateUTF8(filename, maxFilenameLength))
	}

	if filename == "" {
		filename = "untitled"
	}

	return filename
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
