// Package ingestion loads job descriptions and resumes from local files and
// job posting URLs, normalizing everything to plain text before screening.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	innerSpaceRe = regexp.MustCompile(`\s+`)
	blankRunsRe  = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes text content while preserving structure: line endings
// become LF, runs of spaces collapse to one, and blank-line runs cap at one
// empty line.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = blankRunsRe.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}

// cleanLine collapses interior whitespace but keeps the indentation of bullet
// list items, which carries meaning in resumes.
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	collapsed := innerSpaceRe.ReplaceAllString(trimmed, " ")

	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent > 0 {
			return strings.Repeat(" ", indent) + collapsed
		}
	}

	return collapsed
}

// ReadDocument reads one resume or job description file. Unreadable or
// non-UTF-8 files degrade to empty text instead of failing, so a corrupt
// file still produces a result row.
func ReadDocument(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	if !utf8.Valid(data) {
		return ""
	}
	return CleanText(string(data))
}

// Document is a named text loaded from disk.
type Document struct {
	Name string
	Text string
}

// ReadDir loads every regular file in dir as a document, ordered by file
// name. Hidden files and subdirectories are skipped.
func ReadDir(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume directory: %w", err)
	}

	docs := make([]Document, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		docs = append(docs, Document{
			Name: entry.Name(),
			Text: ReadDocument(filepath.Join(dir, entry.Name())),
		})
	}

	return docs, nil
}
