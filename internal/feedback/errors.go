package feedback

import (
	"errors"
	"fmt"
)

// ErrNoBaseline is matched by NoBaselineError through errors.Is.
var ErrNoBaseline = errors.New("no stored extraction to verify against")

// NoBaselineError is returned when verification is requested for a document or version that
// has no stored extraction. Callers must surface it as "cannot verify accuracy".
type NoBaselineError struct {
	DocumentID string
	Version    int // 0 when the latest version was requested
}

func (e *NoBaselineError) Error() string {
	if e.Version == 0 {
		return fmt.Sprintf("no stored extraction for document %q", e.DocumentID)
	}
	return fmt.Sprintf("no stored extraction for document %q version %d", e.DocumentID, e.Version)
}

func (e *NoBaselineError) Is(target error) bool {
	return target == ErrNoBaseline
}

// VersionConflictError is returned when a store could not allocate a version number because
// concurrent writers kept claiming it.
type VersionConflictError struct {
	DocumentID string
	Attempts   int
	Cause      error
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("failed to allocate version for document %q after %d attempts: %v", e.DocumentID, e.Attempts, e.Cause)
}

func (e *VersionConflictError) Unwrap() error {
	return e.Cause
}

// InvalidRecordError is returned when extracted data fails its invariants before persisting.
type InvalidRecordError struct {
	DocumentID string
	Cause      error
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("extraction for document %q is invalid: %v", e.DocumentID, e.Cause)
}

func (e *InvalidRecordError) Unwrap() error {
	return e.Cause
}
