// Package memory provides in-memory store implementations used by tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/taskpull-cli/internal/core/domain"
	"github.com/custodia-labs/taskpull-cli/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
type RecordStore struct {
	mu      sync.RWMutex
	records map[recordKey]domain.TaskRecord
}

type recordKey struct {
	url        string
	recordType string
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{records: make(map[recordKey]domain.TaskRecord)}
}

// Upsert stores or merges a record, keeping the existing ID on collision.
func (s *RecordStore) Upsert(_ context.Context, rec *domain.TaskRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey{url: rec.URL, recordType: rec.Type}
	if existing, ok := s.records[key]; ok {
		rec.ID = existing.ID
	} else if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	s.records[key] = *rec
	return nil
}

// Get retrieves a record by its (url, type) key.
func (s *RecordStore) Get(_ context.Context, url, recordType string) (*domain.TaskRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[recordKey{url: url, recordType: recordType}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// List returns all records ordered by repo, then number.
func (s *RecordStore) List(_ context.Context) ([]domain.TaskRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.TaskRecord, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Repo != records[j].Repo {
			return records[i].Repo < records[j].Repo
		}
		return records[i].Number < records[j].Number
	})
	return records, nil
}

// Close is a no-op for the in-memory store.
func (s *RecordStore) Close() error {
	return nil
}
