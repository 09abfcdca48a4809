package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-entities/internal/feedback"
	"github.com/jonathan/resume-entities/internal/types"
)

// CreateRecord stores data as the next version of documentID. The version is computed by the
// INSERT itself; a lost race trips the unique constraint and is retried, as is a busy database.
func (s *Store) CreateRecord(ctx context.Context, documentID string, data *types.ExtractedResumeData, analysis json.RawMessage) (*types.ExtractionRecord, error) {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: marshal extraction data: %w", err)
	}
	var analysisArg any
	if len(analysis) > 0 {
		analysisArg = string(analysis)
	}

	var lastErr error
	for attempt := 1; attempt <= s.retries; attempt++ {
		record := &types.ExtractionRecord{
			ID:         uuid.New(),
			DocumentID: documentID,
			Data:       *data,
			Analysis:   analysis,
			CreatedAt:  time.Now().UTC(),
		}
		err := s.db.QueryRowContext(ctx,
			`INSERT INTO extraction_records (id, document_id, version, data, analysis, created_at)
			 SELECT ?, ?, COALESCE(MAX(version), 0) + 1, ?, ?, ?
			 FROM extraction_records WHERE document_id = ?
			 RETURNING version`,
			record.ID.String(), documentID, string(dataJSON), analysisArg,
			record.CreatedAt.Format(time.RFC3339Nano), documentID,
		).Scan(&record.Version)
		if err == nil {
			return record, nil
		}

		switch {
		case isUniqueViolation(err):
		case isBusy(err):
			if err := sleepCtx(ctx, time.Duration(100*attempt)*time.Millisecond); err != nil {
				return nil, fmt.Errorf("sqlitestore: context cancelled during retry: %w", err)
			}
		default:
			return nil, fmt.Errorf("sqlitestore: create extraction record: %w", err)
		}
		lastErr = err
	}

	return nil, &feedback.VersionConflictError{DocumentID: documentID, Attempts: s.retries, Cause: lastErr}
}

// GetRecord returns the given version of documentID, or nil when it is not stored.
func (s *Store) GetRecord(ctx context.Context, documentID string, version int) (*types.ExtractionRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, document_id, version, data, analysis, created_at
		 FROM extraction_records
		 WHERE document_id = ? AND version = ?`,
		documentID, version,
	)
	record, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: get extraction record: %w", err)
	}
	return record, nil
}

// LatestRecord returns the highest stored version of documentID, or nil.
func (s *Store) LatestRecord(ctx context.Context, documentID string) (*types.ExtractionRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, document_id, version, data, analysis, created_at
		 FROM extraction_records
		 WHERE document_id = ?
		 ORDER BY version DESC
		 LIMIT 1`,
		documentID,
	)
	record, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: get latest extraction record: %w", err)
	}
	return record, nil
}

// ListVersions returns the stored versions of documentID in ascending order.
func (s *Store) ListVersions(ctx context.Context, documentID string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT version FROM extraction_records WHERE document_id = ? ORDER BY version`,
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: list versions: %w", err)
	}
	defer rows.Close()

	versions := []int{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("sqlitestore: scan version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func scanRecord(row *sql.Row) (*types.ExtractionRecord, error) {
	var (
		record    types.ExtractionRecord
		id        string
		dataJSON  string
		analysis  sql.NullString
		createdAt string
	)
	err := row.Scan(&id, &record.DocumentID, &record.Version, &dataJSON, &analysis, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if record.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid record id %q: %w", id, err)
	}
	if record.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	if err := json.Unmarshal([]byte(dataJSON), &record.Data); err != nil {
		return nil, fmt.Errorf("unmarshal extraction data: %w", err)
	}
	if analysis.Valid {
		record.Analysis = json.RawMessage(analysis.String)
	}
	return &record, nil
}
