package types

import (
	"fmt"
	"maps"

	"github.com/go-playground/validator/v10"
)

// SectionType is the inferred category of a document section.
type SectionType string

const (
	SectionHeader         SectionType = "HEADER"
	SectionSummary        SectionType = "SUMMARY"
	SectionExperience     SectionType = "EXPERIENCE"
	SectionEducation      SectionType = "EDUCATION"
	SectionSkills         SectionType = "SKILLS"
	SectionCertifications SectionType = "CERTIFICATIONS"
	SectionProjects       SectionType = "PROJECTS"
	SectionLanguages      SectionType = "LANGUAGES"
	SectionAchievements   SectionType = "ACHIEVEMENTS"
	SectionVolunteer      SectionType = "VOLUNTEER"
	SectionPublications   SectionType = "PUBLICATIONS"
	SectionReferences     SectionType = "REFERENCES"
	SectionContact        SectionType = "CONTACT"
)

// Section is a contiguous typed span of a document.
//
// StartPosition and EndPosition are inclusive offsets into the full document. Content is the
// section body with the header line removed; it begins at ContentOffset in the document, so a
// content-relative offset plus ContentOffset is a document offset.
type Section struct {
	ID            string      `json:"id" validate:"required"`
	Type          SectionType `json:"type" validate:"required"`
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	Entities      []Entity    `json:"entities" validate:"dive"`
	StartPosition int         `json:"startPosition" validate:"gte=0"`
	EndPosition   int         `json:"endPosition"`
	ContentOffset int         `json:"contentOffset" validate:"gte=0"`
}

// Contains reports whether the span p lies within the section.
func (s Section) Contains(p Position) bool {
	return p.Start >= s.StartPosition && p.End <= s.EndPosition+1
}

// ExtractedResumeData is the unit of record produced once per document ingestion.
type ExtractedResumeData struct {
	Entities []Entity  `json:"entities" validate:"dive"`
	Sections []Section `json:"sections" validate:"dive"`
	RawText  string    `json:"rawText"`
}

// CriticalEntities returns the entities that a rewrite must preserve, in document order.
func (d *ExtractedResumeData) CriticalEntities() []Entity {
	critical := make([]Entity, 0, len(d.Entities))
	for _, e := range d.Entities {
		if e.Type.IsCritical() {
			critical = append(critical, e)
		}
	}
	return critical
}

// EntitiesOfType returns the document-level entities with the given type.
func (d *ExtractedResumeData) EntitiesOfType(t EntityType) []Entity {
	var out []Entity
	for _, e := range d.Entities {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Clone returns a deep copy of d that shares no slices or maps with it.
func (d *ExtractedResumeData) Clone() ExtractedResumeData {
	out := ExtractedResumeData{
		Entities: cloneEntities(d.Entities),
		RawText:  d.RawText,
	}
	if d.Sections != nil {
		out.Sections = make([]Section, len(d.Sections))
		for i, s := range d.Sections {
			s.Entities = cloneEntities(s.Entities)
			out.Sections[i] = s
		}
	}
	return out
}

func cloneEntities(entities []Entity) []Entity {
	if entities == nil {
		return nil
	}
	out := make([]Entity, len(entities))
	for i, e := range entities {
		e.Metadata = maps.Clone(e.Metadata)
		out[i] = e
	}
	return out
}

// Validate checks field constraints and the document-level invariants: every entity span
// reproduces its value, sections tile the document without gaps or overlaps, and every
// document entity is listed by exactly one section whose span contains it.
func (d *ExtractedResumeData) Validate() error {
	validate := validator.New()
	if err := validate.Struct(d); err != nil {
		return err
	}

	if err := d.validateCoverage(); err != nil {
		return err
	}

	for i, e := range d.Entities {
		if e.Position.End > len(d.RawText) {
			return &InvariantError{
				Field:   fmt.Sprintf("entities[%d].position", i),
				Message: fmt.Sprintf("end %d exceeds document length %d", e.Position.End, len(d.RawText)),
			}
		}
		if got := d.RawText[e.Position.Start:e.Position.End]; got != e.Value {
			return &InvariantError{
				Field:   fmt.Sprintf("entities[%d].value", i),
				Message: fmt.Sprintf("span text %q does not match value %q", got, e.Value),
			}
		}

		owners := 0
		for _, s := range d.Sections {
			for _, se := range s.Entities {
				if se.SameAs(e) {
					owners++
					if !s.Contains(e.Position) {
						return &InvariantError{
							Field:   fmt.Sprintf("entities[%d]", i),
							Message: fmt.Sprintf("section %s does not contain position %d-%d", s.ID, e.Position.Start, e.Position.End),
						}
					}
				}
			}
		}
		if owners != 1 {
			return &InvariantError{
				Field:   fmt.Sprintf("entities[%d]", i),
				Message: fmt.Sprintf("listed by %d sections, want exactly 1", owners),
			}
		}
	}

	return nil
}

func (d *ExtractedResumeData) validateCoverage() error {
	if len(d.RawText) == 0 {
		return nil
	}
	if len(d.Sections) == 0 {
		return &InvariantError{Field: "sections", Message: "non-empty document has no sections"}
	}

	next := 0
	for i, s := range d.Sections {
		if s.StartPosition != next {
			return &InvariantError{
				Field:   fmt.Sprintf("sections[%d].startPosition", i),
				Message: fmt.Sprintf("got %d, want %d", s.StartPosition, next),
			}
		}
		if s.EndPosition < s.StartPosition-1 {
			return &InvariantError{
				Field:   fmt.Sprintf("sections[%d].endPosition", i),
				Message: fmt.Sprintf("end %d precedes start %d", s.EndPosition, s.StartPosition),
			}
		}
		next = s.EndPosition + 1
	}
	if next != len(d.RawText) {
		return &InvariantError{
			Field:   "sections",
			Message: fmt.Sprintf("sections cover up to %d, document length is %d", next, len(d.RawText)),
		}
	}
	return nil
}

// InvariantError reports a violated cross-field invariant of extracted data.
type InvariantError struct {
	Field   string
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated in %s: %s", e.Field, e.Message)
}
