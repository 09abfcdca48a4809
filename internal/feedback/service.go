package feedback

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-entities/internal/extraction"
	"github.com/jonathan/resume-entities/internal/types"
	"github.com/jonathan/resume-entities/internal/verification"
)

// IngestRequest asks for a document to be extracted and stored as a new version.
type IngestRequest struct {
	DocumentID string          `json:"documentId" validate:"required,max=255"`
	Text       string          `json:"text"`
	Analysis   json.RawMessage `json:"analysis,omitempty"`
}

// Validate validates the IngestRequest using the validator.
func (r *IngestRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// VerifyRequest asks for candidate text to be checked against a stored version. Version 0
// selects the latest stored version.
type VerifyRequest struct {
	DocumentID string `json:"documentId" validate:"required,max=255"`
	Version    int    `json:"version" validate:"gte=0"`
	Candidate  string `json:"candidate"`
}

// Validate validates the VerifyRequest using the validator.
func (r *VerifyRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// IngestResult is a stored record plus the sections that failed extraction.
type IngestResult struct {
	Record   *types.ExtractionRecord
	Failures []*extraction.SectionError
}

// VerifyResult is a verification verdict and the baseline version it was computed against.
type VerifyResult struct {
	DocumentID string                    `json:"documentId"`
	Version    int                       `json:"version"`
	Result     *types.VerificationResult `json:"result"`
}

// Service ties extraction and verification to a Store.
type Service struct {
	store    Store
	pipeline *extraction.Pipeline
	verifier *verification.Verifier
	logger   zerolog.Logger
}

// NewService creates a Service. A nil pipeline or verifier is replaced by the default one.
func NewService(store Store, pipeline *extraction.Pipeline, verifier *verification.Verifier, logger zerolog.Logger) *Service {
	if pipeline == nil {
		pipeline = extraction.NewPipeline(extraction.WithLogger(logger))
	}
	if verifier == nil {
		verifier = verification.New(verification.DefaultOptions(), verification.WithLogger(logger))
	}
	return &Service{store: store, pipeline: pipeline, verifier: verifier, logger: logger}
}

// Ingest extracts entities from the request text and stores them as the next version of the
// document. Section failures do not fail the call; they are reported in the result.
func (s *Service) Ingest(ctx context.Context, req *IngestRequest) (*IngestResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ingest request: %w", err)
	}

	run := s.pipeline.Run(req.Text)
	if err := run.Data.Validate(); err != nil {
		return nil, &InvalidRecordError{DocumentID: req.DocumentID, Cause: err}
	}

	record, err := s.store.CreateRecord(ctx, req.DocumentID, run.Data, req.Analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to store extraction for %s: %w", req.DocumentID, err)
	}

	s.logger.Info().
		Str("document_id", record.DocumentID).
		Int("version", record.Version).
		Int("sections", len(record.Data.Sections)).
		Int("entities", len(record.Data.Entities)).
		Int("failed_sections", len(run.Failures)).
		Msg("stored extraction")

	return &IngestResult{Record: record, Failures: run.Failures}, nil
}

// Verify checks the candidate text against the stored baseline. It returns a
// *NoBaselineError when no record exists; a missing baseline is never reported as preserved.
func (s *Service) Verify(ctx context.Context, req *VerifyRequest) (*VerifyResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid verify request: %w", err)
	}

	record, err := s.baseline(ctx, req.DocumentID, req.Version)
	if err != nil {
		return nil, err
	}

	result := s.verifier.Verify(record.Data.Entities, req.Candidate)

	event := s.logger.Info()
	if !result.Preserved {
		event = s.logger.Warn()
	}
	event.
		Str("document_id", record.DocumentID).
		Int("version", record.Version).
		Int("missing", len(result.MissingEntities)).
		Int("modified", len(result.ModifiedEntities)).
		Msg(result.Summary())

	return &VerifyResult{DocumentID: record.DocumentID, Version: record.Version, Result: result}, nil
}

// CriticalEntities returns the entities of a stored version that a rewrite must preserve.
// Version 0 selects the latest version.
func (s *Service) CriticalEntities(ctx context.Context, documentID string, version int) ([]types.Entity, error) {
	record, err := s.baseline(ctx, documentID, version)
	if err != nil {
		return nil, err
	}
	return record.Data.CriticalEntities(), nil
}

// baseline loads the requested version, or the latest one when version is 0.
func (s *Service) baseline(ctx context.Context, documentID string, version int) (*types.ExtractionRecord, error) {
	var (
		record *types.ExtractionRecord
		err    error
	)
	if version == 0 {
		record, err = s.store.LatestRecord(ctx, documentID)
	} else {
		record, err = s.store.GetRecord(ctx, documentID, version)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load baseline for %s: %w", documentID, err)
	}
	if record == nil {
		return nil, &NoBaselineError{DocumentID: documentID, Version: version}
	}
	return record, nil
}
