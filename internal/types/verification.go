package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ModifiedEntity pairs an original entity with the reworded text found in its place.
type ModifiedEntity struct {
	Original Entity `json:"original"`
	Modified string `json:"modified"`
}

// VerificationResult is the verdict of checking a rewritten document against stored entities.
// Preserved is true iff MissingEntities is empty; modifications are advisory.
type VerificationResult struct {
	Preserved        bool             `json:"preserved"`
	MissingEntities  []Entity         `json:"missingEntities"`
	ModifiedEntities []ModifiedEntity `json:"modifiedEntities"`
}

// Summary renders the verdict as the short notice shown to end users.
func (r *VerificationResult) Summary() string {
	switch {
	case len(r.MissingEntities) == 0 && len(r.ModifiedEntities) == 0:
		return "All critical details were preserved"
	case len(r.MissingEntities) == 0:
		return fmt.Sprintf("%d details may have been modified", len(r.ModifiedEntities))
	case len(r.ModifiedEntities) == 0:
		return fmt.Sprintf("%d critical details may have been lost", len(r.MissingEntities))
	default:
		return fmt.Sprintf("%d details may have been modified / %d critical details may have been lost",
			len(r.ModifiedEntities), len(r.MissingEntities))
	}
}

// ExtractionRecord is one immutable stored extraction for a (document, version) pair.
type ExtractionRecord struct {
	ID         uuid.UUID           `json:"id"`
	DocumentID string              `json:"documentId"`
	Version    int                 `json:"version"`
	Data       ExtractedResumeData `json:"data"`
	Analysis   json.RawMessage     `json:"analysis,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
}
