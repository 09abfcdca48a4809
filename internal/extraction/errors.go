package extraction

import (
	"fmt"

	"github.com/jonathan/resume-entities/internal/types"
)

// SectionError records a rule family failure for one section. The pipeline keeps going
// after a SectionError; the affected section simply carries no entities.
type SectionError struct {
	SectionID   string
	SectionType types.SectionType
	Family      string
	Cause       error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("extraction failed for %s (%s, family %s): %v", e.SectionID, e.SectionType, e.Family, e.Cause)
}

func (e *SectionError) Unwrap() error {
	return e.Cause
}

// PanicError wraps a value recovered from a panicking rule family.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("rule family panicked: %v", e.Value)
}
