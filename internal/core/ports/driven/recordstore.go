package driven

import (
	"context"

	"github.com/custodia-labs/taskpull-cli/internal/core/domain"
)

// RecordStore persists canonical task records. Records are keyed by
// (url, type); upserting an existing key merges the fresh record over the
// stored one, keeping the original ID.
type RecordStore interface {
	// Upsert inserts the record or updates the one sharing its (url, type)
	// key. The record's ID is populated on return.
	Upsert(ctx context.Context, rec *domain.TaskRecord) error

	// Get retrieves a record by its (url, type) key.
	// Returns domain.ErrNotFound if no such record exists.
	Get(ctx context.Context, url, recordType string) (*domain.TaskRecord, error)

	// List returns all stored records ordered by repo, then number.
	List(ctx context.Context) ([]domain.TaskRecord, error)

	// Close releases the underlying resources.
	Close() error
}
