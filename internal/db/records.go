package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-entities/internal/feedback"
	"github.com/jonathan/resume-entities/internal/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS extraction_records (
	id          UUID PRIMARY KEY,
	document_id TEXT NOT NULL,
	version     INTEGER NOT NULL CHECK (version > 0),
	data        JSONB NOT NULL,
	analysis    JSONB,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (document_id, version)
)`

// -----------------------------------------------------------------------------
// Extraction Record Methods
// -----------------------------------------------------------------------------

// CreateRecord stores data as the next version of documentID. The version is computed inside
// the INSERT; when a concurrent insert takes the same number the unique constraint rejects
// this one and the insert is retried.
func (db *DB) CreateRecord(ctx context.Context, documentID string, data *types.ExtractedResumeData, analysis json.RawMessage) (*types.ExtractionRecord, error) {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extraction data: %w", err)
	}
	var analysisArg any
	if len(analysis) > 0 {
		analysisArg = []byte(analysis)
	}

	var lastErr error
	for attempt := 1; attempt <= db.retries; attempt++ {
		record := &types.ExtractionRecord{
			ID:         uuid.New(),
			DocumentID: documentID,
			Data:       *data,
			Analysis:   analysis,
		}
		err := db.pool.QueryRow(ctx,
			`INSERT INTO extraction_records (id, document_id, version, data, analysis)
			 SELECT $1::uuid, $2::text, COALESCE(MAX(version), 0) + 1, $3::jsonb, $4::jsonb
			 FROM extraction_records WHERE document_id = $2
			 RETURNING version, created_at`,
			record.ID, documentID, dataJSON, analysisArg,
		).Scan(&record.Version, &record.CreatedAt)
		if err == nil {
			return record, nil
		}
		if !isUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create extraction record: %w", err)
		}
		lastErr = err
	}

	return nil, &feedback.VersionConflictError{DocumentID: documentID, Attempts: db.retries, Cause: lastErr}
}

// GetRecord retrieves one version of a document's extraction
func (db *DB) GetRecord(ctx context.Context, documentID string, version int) (*types.ExtractionRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, document_id, version, data, analysis, created_at
		 FROM extraction_records
		 WHERE document_id = $1 AND version = $2`,
		documentID, version,
	)
	record, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get extraction record: %w", err)
	}
	return record, nil
}

// LatestRecord retrieves the highest stored version of a document's extraction
func (db *DB) LatestRecord(ctx context.Context, documentID string) (*types.ExtractionRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, document_id, version, data, analysis, created_at
		 FROM extraction_records
		 WHERE document_id = $1
		 ORDER BY version DESC
		 LIMIT 1`,
		documentID,
	)
	record, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest extraction record: %w", err)
	}
	return record, nil
}

// ListVersions returns the stored versions of a document in ascending order
func (db *DB) ListVersions(ctx context.Context, documentID string) ([]int, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT version FROM extraction_records WHERE document_id = $1 ORDER BY version`,
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	defer rows.Close()

	versions := []int{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	return versions, nil
}

// scanRecord decodes one row, returning nil, nil when there is none.
func scanRecord(row pgx.Row) (*types.ExtractionRecord, error) {
	var (
		record       types.ExtractionRecord
		dataJSON     []byte
		analysisJSON []byte
		createdAt    time.Time
	)
	err := row.Scan(&record.ID, &record.DocumentID, &record.Version, &dataJSON, &analysisJSON, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(dataJSON, &record.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal extraction data: %w", err)
	}
	if analysisJSON != nil {
		record.Analysis = json.RawMessage(analysisJSON)
	}
	record.CreatedAt = createdAt
	return &record, nil
}
