// Package feedback stores versioned extraction records per document and verifies rewritten
// documents against them.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-entities/internal/types"
)

// DefaultVersionRetries bounds how many times a store retries version allocation after a
// concurrent writer claimed the same number.
const DefaultVersionRetries = 5

// Store persists extraction records. Versions start at 1 and are allocated by the store
// atomically per document; two concurrent CreateRecord calls for one document never
// receive the same version.
//
// GetRecord and LatestRecord return nil, nil when nothing is stored.
type Store interface {
	CreateRecord(ctx context.Context, documentID string, data *types.ExtractedResumeData, analysis json.RawMessage) (*types.ExtractionRecord, error)
	GetRecord(ctx context.Context, documentID string, version int) (*types.ExtractionRecord, error)
	LatestRecord(ctx context.Context, documentID string) (*types.ExtractionRecord, error)
	ListVersions(ctx context.Context, documentID string) ([]int, error)
}

// MemoryStore is an in-process Store. Allocation and insert happen under one lock. Records
// are copied in and out, so neither the caller's data nor a returned record aliases a
// stored one.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]types.ExtractionRecord
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]types.ExtractionRecord)}
}

// CreateRecord stores data as the next version of documentID.
func (s *MemoryStore) CreateRecord(ctx context.Context, documentID string, data *types.ExtractedResumeData, analysis json.RawMessage) (*types.ExtractionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := types.ExtractionRecord{
		ID:         uuid.New(),
		DocumentID: documentID,
		Version:    len(s.records[documentID]) + 1,
		Data:       data.Clone(),
		Analysis:   bytes.Clone(analysis),
		CreatedAt:  time.Now().UTC(),
	}
	s.records[documentID] = append(s.records[documentID], record)
	return copyRecord(record), nil
}

// GetRecord returns the given version of documentID.
func (s *MemoryStore) GetRecord(ctx context.Context, documentID string, version int) (*types.ExtractionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.records[documentID]
	if version < 1 || version > len(records) {
		return nil, nil
	}
	return copyRecord(records[version-1]), nil
}

// LatestRecord returns the highest version of documentID.
func (s *MemoryStore) LatestRecord(ctx context.Context, documentID string) (*types.ExtractionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.records[documentID]
	if len(records) == 0 {
		return nil, nil
	}
	return copyRecord(records[len(records)-1]), nil
}

// ListVersions returns the stored versions of documentID in ascending order.
func (s *MemoryStore) ListVersions(ctx context.Context, documentID string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	versions := make([]int, 0, len(s.records[documentID]))
	for _, r := range s.records[documentID] {
		versions = append(versions, r.Version)
	}
	return versions, nil
}

func copyRecord(r types.ExtractionRecord) *types.ExtractionRecord {
	r.Data = r.Data.Clone()
	r.Analysis = bytes.Clone(r.Analysis)
	return &r
}
