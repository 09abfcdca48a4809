// Package types provides type definitions for the structured data produced and consumed by the
// segmentation, extraction and verification engine.
package types

import (
	"github.com/go-playground/validator/v10"
)

// EntityType is the closed set of entity categories the extractor emits.
type EntityType string

const (
	EntityPersonName    EntityType = "PERSON_NAME"
	EntityCompanyName   EntityType = "COMPANY_NAME"
	EntityJobTitle      EntityType = "JOB_TITLE"
	EntityDate          EntityType = "DATE"
	EntityDateRange     EntityType = "DATE_RANGE"
	EntityLocation      EntityType = "LOCATION"
	EntityEducation     EntityType = "EDUCATION"
	EntityDegree        EntityType = "DEGREE"
	EntitySkill         EntityType = "SKILL"
	EntityCertification EntityType = "CERTIFICATION"
	EntityPhone         EntityType = "PHONE"
	EntityEmail         EntityType = "EMAIL"
	EntityWebsite       EntityType = "WEBSITE"
	EntityAchievement   EntityType = "ACHIEVEMENT"
	EntityMetric        EntityType = "METRIC"
)

// AllEntityTypes lists every entity type in declaration order.
var AllEntityTypes = []EntityType{
	EntityPersonName, EntityCompanyName, EntityJobTitle, EntityDate, EntityDateRange,
	EntityLocation, EntityEducation, EntityDegree, EntitySkill, EntityCertification,
	EntityPhone, EntityEmail, EntityWebsite, EntityAchievement, EntityMetric,
}

// criticalEntityTypes are the types whose loss during rewriting is a factual change.
// Skills, links and contact details may be reorganised freely.
var criticalEntityTypes = map[EntityType]bool{
	EntityPersonName:    true,
	EntityCompanyName:   true,
	EntityJobTitle:      true,
	EntityDate:          true,
	EntityDateRange:     true,
	EntityEducation:     true,
	EntityDegree:        true,
	EntityCertification: true,
	EntityMetric:        true,
}

// IsCritical reports whether entities of this type must survive a rewrite.
func (t EntityType) IsCritical() bool {
	return criticalEntityTypes[t]
}

// Valid reports whether t is one of the known entity types.
func (t EntityType) Valid() bool {
	for _, known := range AllEntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Metadata keys attached to every entity once merged into a document-level result.
const (
	MetaSectionID   = "sectionId"
	MetaSectionType = "sectionType"
	MetaRule        = "rule"
)

// Position is a half-open [Start, End) byte range into the full document text.
type Position struct {
	Start int `json:"start" validate:"gte=0"`
	End   int `json:"end" validate:"gtfield=Start"`
}

// Len returns the length of the span.
func (p Position) Len() int {
	return p.End - p.Start
}

// Shift returns the position moved by offset.
func (p Position) Shift(offset int) Position {
	return Position{Start: p.Start + offset, End: p.End + offset}
}

// Entity is a single typed fact extracted from a document.
type Entity struct {
	Type       EntityType        `json:"type" validate:"required,oneof=PERSON_NAME COMPANY_NAME JOB_TITLE DATE DATE_RANGE LOCATION EDUCATION DEGREE SKILL CERTIFICATION PHONE EMAIL WEBSITE ACHIEVEMENT METRIC"`
	Value      string            `json:"value" validate:"required"`
	Confidence float64           `json:"confidence" validate:"gte=0,lte=1"`
	Position   Position          `json:"position"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Validate checks the field-level constraints of the entity.
func (e *Entity) Validate() error {
	validate := validator.New()
	return validate.Struct(e)
}

// SectionID returns the owning section recorded in metadata, if any.
func (e Entity) SectionID() string {
	return e.Metadata[MetaSectionID]
}

// key identifies an entity by type and span; two matches of the same rule family at the
// same span collapse to one entity.
type entityKey struct {
	Type  EntityType
	Start int
	End   int
}

func (e Entity) key() entityKey {
	return entityKey{Type: e.Type, Start: e.Position.Start, End: e.Position.End}
}

// SameAs reports whether two entities describe the same typed span.
func (e Entity) SameAs(other Entity) bool {
	return e.key() == other.key()
}
