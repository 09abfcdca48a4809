// Package extraction turns section text into typed entities with confidence scores and
// positions, and orchestrates segmentation plus extraction over a whole document.
package extraction

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-entities/internal/types"
)

// Rule is a single pattern matcher producing one entity type at a fixed confidence.
type Rule struct {
	Name       string
	Type       types.EntityType
	Pattern    *regexp.Regexp
	Group      int // capture group used as the entity span; 0 is the whole match
	Confidence float64
}

// Apply reports every non-overlapping match of the rule in text. Positions are relative to text.
func (r Rule) Apply(text string) []types.Entity {
	matches := r.Pattern.FindAllStringSubmatchIndex(text, -1)
	entities := make([]types.Entity, 0, len(matches))
	for _, m := range matches {
		start, end := m[2*r.Group], m[2*r.Group+1]
		if start < 0 || end <= start {
			continue
		}
		entities = append(entities, newEntity(r.Type, text, start, end, r.Confidence, r.Name))
	}
	return entities
}

func newEntity(t types.EntityType, text string, start, end int, confidence float64, rule string) types.Entity {
	return types.Entity{
		Type:       t,
		Value:      text[start:end],
		Confidence: confidence,
		Position:   types.Position{Start: start, End: end},
		Metadata:   map[string]string{types.MetaRule: rule},
	}
}

// Matcher is a structural heuristic that cannot be expressed as one regular expression.
type Matcher func(text string) []types.Entity

// RuleFamily extracts entities from the text of one section. Positions are relative to text.
type RuleFamily interface {
	Name() string
	Extract(text string) ([]types.Entity, error)
}

// patternFamily runs independent rules and matchers over the full text. Matches never
// suppress each other; a span may be claimed by several entity types.
type patternFamily struct {
	name     string
	rules    []Rule
	matchers []Matcher
}

func (f *patternFamily) Name() string {
	return f.name
}

func (f *patternFamily) Extract(text string) ([]types.Entity, error) {
	var entities []types.Entity
	for _, r := range f.rules {
		entities = append(entities, r.Apply(text)...)
	}
	for _, m := range f.matchers {
		entities = append(entities, m(text)...)
	}
	return entities, nil
}

// FamilyFunc adapts a function to the RuleFamily interface.
type FamilyFunc struct {
	FamilyName string
	Fn         func(text string) ([]types.Entity, error)
}

func (f FamilyFunc) Name() string {
	return f.FamilyName
}

func (f FamilyFunc) Extract(text string) ([]types.Entity, error) {
	return f.Fn(text)
}

// isTermBoundary reports whether r may sit next to a dictionary term without joining it.
func isTermBoundary(r rune) bool {
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '_')
}

// boundedAt reports whether text[start:end] is delimited by term boundaries on both sides.
func boundedAt(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if !isTermBoundary(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if !isTermBoundary(r) {
			return false
		}
	}
	return true
}
