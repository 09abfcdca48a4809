// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-entities/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, ending with "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// PrintSections outputs the section layout of a segmented document.
func (p *Printer) PrintSections(sections []types.Section) {
	if len(sections) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Sections: %d\n\n", len(sections))
	for _, s := range sections {
		title := s.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(&sb, "%-11s %-14s %s\n", s.ID, s.Type, title)
		fmt.Fprintf(&sb, "            [%d, %d]  %d entities\n", s.StartPosition, s.EndPosition, len(s.Entities))
	}

	p.printBox("DOCUMENT SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEntities outputs entity counts per type and the first few entities of each type.
func (p *Printer) PrintEntities(data *types.ExtractedResumeData) {
	if data == nil || len(data.Entities) == 0 {
		return
	}

	byType := make(map[types.EntityType][]types.Entity)
	for _, e := range data.Entities {
		byType[e.Type] = append(byType[e.Type], e)
	}
	present := make([]types.EntityType, 0, len(byType))
	for t := range byType {
		present = append(present, t)
	}
	sort.Slice(present, func(i, j int) bool { return present[i] < present[j] })

	var sb strings.Builder
	fmt.Fprintf(&sb, "Total entities: %d (%d critical)\n", len(data.Entities), len(data.CriticalEntities()))
	for _, t := range present {
		entities := byType[t]
		marker := " "
		if t.IsCritical() {
			marker = "*"
		}
		fmt.Fprintf(&sb, "\n%s %s (%d)\n", marker, t, len(entities))

		count := min(len(entities), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := entities[i]
			fmt.Fprintf(&sb, "    • %s  %.2f @%d\n", truncate(e.Value, 34), e.Confidence, e.Position.Start)
		}
		if len(entities) > maxItemsToShow {
			fmt.Fprintf(&sb, "    ... and %d more\n", len(entities)-maxItemsToShow)
		}
	}

	p.printBox("EXTRACTED ENTITIES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSectionFailures outputs sections whose extraction failed.
func (p *Printer) PrintSectionFailures(failures []error) {
	if len(failures) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d sections skipped:\n", len(failures))
	for _, err := range failures {
		fmt.Fprintf(&sb, "  ✗ %s\n", err)
	}

	p.printBox("SECTION FAILURES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintVerification outputs the preservation verdict with missing and modified entities.
func (p *Printer) PrintVerification(result *types.VerificationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	status := "✓ PRESERVED"
	if !result.Preserved {
		status = "✗ NOT PRESERVED"
	}
	fmt.Fprintf(&sb, "Status: %s\n", status)
	for _, part := range strings.Split(result.Summary(), " / ") {
		sb.WriteString(part + "\n")
	}

	if len(result.MissingEntities) > 0 {
		sb.WriteString("\nMissing:\n")
		count := min(len(result.MissingEntities), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := result.MissingEntities[i]
			fmt.Fprintf(&sb, "  ✗ [%s] %s\n", e.Type, e.Value)
		}
		if len(result.MissingEntities) > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(result.MissingEntities)-maxItemsToShow)
		}
	}

	if len(result.ModifiedEntities) > 0 {
		sb.WriteString("\nModified:\n")
		count := min(len(result.ModifiedEntities), maxItemsToShow)
		for i := 0; i < count; i++ {
			m := result.ModifiedEntities[i]
			fmt.Fprintf(&sb, "  ~ [%s] %s\n", m.Original.Type, m.Original.Value)
			fmt.Fprintf(&sb, "      → %s\n", m.Modified)
		}
		if len(result.ModifiedEntities) > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(result.ModifiedEntities)-maxItemsToShow)
		}
	}

	p.printBox("PRESERVATION CHECK", strings.TrimSuffix(sb.String(), "\n"))
}
