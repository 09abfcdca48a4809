// Package segmentation splits raw resume text into ordered, typed, non-overlapping sections.
package segmentation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-entities/internal/types"
)

const (
	// DefaultHeaderMaxLength is the exclusive upper bound on the length of a header line.
	// Longer lines are body text even when they contain a section keyword.
	DefaultHeaderMaxLength = 50

	// syntheticTitle labels the leading section opened for content before the first header.
	syntheticTitle = "Header"
)

// Options tunes header recognition.
type Options struct {
	HeaderMaxLength int
}

// DefaultOptions returns the options matching the documented defaults.
func DefaultOptions() Options {
	return Options{HeaderMaxLength: DefaultHeaderMaxLength}
}

// Segmenter recognises header lines and cuts a document into sections.
// A Segmenter holds no mutable state and is safe for concurrent use.
type Segmenter struct {
	opts Options
}

// New creates a Segmenter. Zero-valued options fall back to defaults.
func New(opts Options) *Segmenter {
	if opts.HeaderMaxLength <= 0 {
		opts.HeaderMaxLength = DefaultHeaderMaxLength
	}
	return &Segmenter{opts: opts}
}

// Segment splits rawText with the default options.
func Segment(rawText string) []types.Section {
	return New(DefaultOptions()).Segment(rawText)
}

// openSection tracks the section being accumulated.
type openSection struct {
	sectionType   types.SectionType
	title         string
	start         int
	contentOffset int
}

// Segment splits rawText into sections that together cover [0, len(rawText)-1].
// Content before the first header line becomes a synthetic HEADER section starting at 0.
// Empty input yields a single empty HEADER section whose EndPosition is -1.
func (s *Segmenter) Segment(rawText string) []types.Section {
	var sections []types.Section
	var current *openSection

	offset := 0
	for _, rawLine := range strings.SplitAfter(rawText, "\n") {
		if rawLine == "" {
			continue
		}
		line := strings.TrimRight(rawLine, "\r\n")

		if sectionType, ok := s.ClassifyHeader(line); ok {
			if current != nil {
				sections = append(sections, closeSection(current, rawText, offset-1, len(sections)))
			}
			current = &openSection{
				sectionType:   sectionType,
				title:         strings.TrimSpace(line),
				start:         offset,
				contentOffset: offset + len(rawLine),
			}
		} else if current == nil {
			current = &openSection{
				sectionType: types.SectionHeader,
				title:       syntheticTitle,
			}
		}

		offset += len(rawLine)
	}

	if current == nil {
		return []types.Section{{
			ID:            sectionID(0),
			Type:          types.SectionHeader,
			Title:         syntheticTitle,
			Entities:      []types.Entity{},
			StartPosition: 0,
			EndPosition:   -1,
		}}
	}

	return append(sections, closeSection(current, rawText, len(rawText)-1, len(sections)))
}

// ClassifyHeader reports whether line is a section header and, if so, which type it announces.
func (s *Segmenter) ClassifyHeader(line string) (types.SectionType, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}
	if utf8.RuneCountInString(trimmed) >= s.opts.HeaderMaxLength {
		return "", false
	}
	if HasListMarker(trimmed) {
		return "", false
	}

	if !wholeHeader(trimmed) {
		return "", false
	}

	for _, p := range headerPatterns {
		if p.regex.MatchString(trimmed) {
			return p.sectionType, true
		}
	}
	for _, p := range weakHeaderPatterns {
		if p.regex.MatchString(trimmed) {
			return p.sectionType, true
		}
	}
	return "", false
}

// wholeHeader reports whether every word of line belongs to the header vocabulary. Digits
// never appear in a header.
func wholeHeader(line string) bool {
	if strings.ContainsFunc(line, unicode.IsDigit) {
		return false
	}
	words := strings.FieldsFunc(strings.ToLower(line), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !headerVocabulary[w] {
			return false
		}
	}
	return true
}

func closeSection(open *openSection, rawText string, end, index int) types.Section {
	contentStart := min(open.contentOffset, end+1)
	return types.Section{
		ID:            sectionID(index),
		Type:          open.sectionType,
		Title:         open.title,
		Content:       rawText[contentStart : end+1],
		Entities:      []types.Entity{},
		StartPosition: open.start,
		EndPosition:   end,
		ContentOffset: contentStart,
	}
}

func sectionID(index int) string {
	return fmt.Sprintf("section-%d", index)
}
