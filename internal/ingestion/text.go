// Package ingestion turns resume files into the plain UTF-8 text the segmenter and extractor consume.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	innerSpace  = regexp.MustCompile(`[ \t\f\v]+`)
	blankLineRe = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes line endings and whitespace. Line structure is kept: headers stay on their
// own lines and list markers keep their indentation, since segmentation depends on both.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ToValidUTF8(content, "\ufffd")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = blankLineRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims trailing whitespace and collapses runs inside the line, keeping leading indentation.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t\f\v")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	indent := strings.ReplaceAll(line[:len(line)-len(trimmed)], "\t", "    ")
	return indent + innerSpace.ReplaceAllString(trimmed, " ")
}

// IngestFromFile reads a resume file, flattens it according to its extension and returns the cleaned
// text with its metadata.
func IngestFromFile(path string) (string, *Metadata, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return "", nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	text, err := Ingest(string(content), format)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}
	return text, NewMetadata(text, path, format), nil
}

// Ingest converts raw content of the given format to cleaned text.
func Ingest(content string, format Format) (string, error) {
	var text string
	switch format {
	case FormatText, FormatMarkdown:
		text = CleanText(content)
	case FormatHTML:
		flat, err := FlattenHTML(content)
		if err != nil {
			return "", err
		}
		text = flat
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if text == "" {
		return "", ErrEmptyInput
	}
	return text, nil
}

// WriteOutput writes <name>.cleaned.txt and <name>.meta.json into outDir.
func WriteOutput(outDir, name, cleanedText string, metadata *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cleanedPath := filepath.Join(outDir, name+".cleaned.txt")
	if err := os.WriteFile(cleanedPath, []byte(cleanedText), 0644); err != nil {
		return fmt.Errorf("failed to write cleaned text file: %w", err)
	}

	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return err
	}
	metaPath := filepath.Join(outDir, name+".meta.json")
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}
