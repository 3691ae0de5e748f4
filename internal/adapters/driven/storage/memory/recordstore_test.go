package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskpull-cli/internal/core/domain"
)

func TestRecordStore_Upsert(t *testing.T) {
	t.Run("assigns an id on first insert", func(t *testing.T) {
		s := NewRecordStore()
		rec := domain.TaskRecord{URL: "u", Type: domain.TypeIssue}

		require.NoError(t, s.Upsert(context.Background(), &rec))

		assert.NotEmpty(t, rec.ID)
	})

	t.Run("keeps the original id across upserts", func(t *testing.T) {
		s := NewRecordStore()
		first := domain.TaskRecord{URL: "u", Type: domain.TypeIssue, Title: "old"}
		require.NoError(t, s.Upsert(context.Background(), &first))

		second := domain.TaskRecord{URL: "u", Type: domain.TypeIssue, Title: "new"}
		require.NoError(t, s.Upsert(context.Background(), &second))

		assert.Equal(t, first.ID, second.ID)

		got, err := s.Get(context.Background(), "u", domain.TypeIssue)
		require.NoError(t, err)
		assert.Equal(t, "new", got.Title)
	})
}

func TestRecordStore_Get(t *testing.T) {
	t.Run("missing record returns ErrNotFound", func(t *testing.T) {
		s := NewRecordStore()

		_, err := s.Get(context.Background(), "nope", domain.TypeIssue)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRecordStore_List(t *testing.T) {
	t.Run("orders by repo then number", func(t *testing.T) {
		s := NewRecordStore()
		for _, rec := range []domain.TaskRecord{
			{URL: "c", Type: domain.TypeIssue, Repo: "z/r", Number: 1},
			{URL: "a", Type: domain.TypeIssue, Repo: "a/r", Number: 2},
			{URL: "b", Type: domain.TypeIssue, Repo: "a/r", Number: 1},
		} {
			r := rec
			require.NoError(t, s.Upsert(context.Background(), &r))
		}

		all, err := s.List(context.Background())

		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "a/r", all[0].Repo)
		assert.Equal(t, 1, all[0].Number)
		assert.Equal(t, 2, all[1].Number)
		assert.Equal(t, "z/r", all[2].Repo)
	})
}
