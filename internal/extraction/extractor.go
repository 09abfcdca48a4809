package extraction

import (
	"sort"

	"github.com/jonathan/resume-entities/internal/types"
)

// Extractor dispatches section text to the rule family registered for its section type.
type Extractor struct {
	registry *Registry
}

// NewExtractor creates an Extractor backed by the standard registry.
func NewExtractor(opts Options) *Extractor {
	return &Extractor{registry: NewRegistry(opts)}
}

// NewExtractorWithRegistry creates an Extractor backed by a caller-built registry.
func NewExtractorWithRegistry(registry *Registry) *Extractor {
	return &Extractor{registry: registry}
}

// Registry exposes the dispatch table, e.g. to register additional families.
func (e *Extractor) Registry() *Registry {
	return e.registry
}

// ExtractEntities runs the family for sectionType over sectionText. Positions in the result
// are relative to sectionText, de-duplicated by type and span, and sorted in text order.
// Unknown section types use the generic family.
func (e *Extractor) ExtractEntities(sectionText string, sectionType types.SectionType) ([]types.Entity, error) {
	family := e.registry.Lookup(sectionType)
	found, err := family.Extract(sectionText)
	if err != nil {
		return nil, err
	}
	return normalize(found, sectionText), nil
}

// normalize drops unknown types and spans that do not reproduce their value, removes
// duplicate type/span pairs and sorts by position.
func normalize(entities []types.Entity, text string) []types.Entity {
	out := make([]types.Entity, 0, len(entities))
	seen := make(map[[3]int]bool, len(entities))
	for _, e := range entities {
		if !e.Type.Valid() {
			continue
		}
		if e.Position.Start < 0 || e.Position.End <= e.Position.Start || e.Position.End > len(text) {
			continue
		}
		if text[e.Position.Start:e.Position.End] != e.Value {
			continue
		}
		k := [3]int{typeRank[e.Type], e.Position.Start, e.Position.End}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	sortEntities(out)
	return out
}

var typeRank = func() map[types.EntityType]int {
	rank := make(map[types.EntityType]int, len(types.AllEntityTypes))
	for i, t := range types.AllEntityTypes {
		rank[t] = i
	}
	return rank
}()

func sortEntities(entities []types.Entity) {
	sort.SliceStable(entities, func(i, j int) bool {
		a, b := entities[i].Position, entities[j].Position
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return typeRank[entities[i].Type] < typeRank[entities[j].Type]
	})
}
