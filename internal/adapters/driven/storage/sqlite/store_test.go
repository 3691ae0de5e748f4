package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskpull-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecord() domain.TaskRecord {
	return domain.TaskRecord{
		Project:     "proj",
		Priority:    "M",
		Tags:        []string{"bug"},
		Annotations: []domain.Annotation{{Author: "bob", Body: "me too"}},
		Description: "Is#1 - Widget breaks .. https://example.test/alice/proj/issues/1",
		Title:       "Widget breaks",
		Body:        "details",
		URL:         "https://example.test/alice/proj/issues/1",
		Repo:        "alice/proj",
		Type:        domain.TypeIssue,
		Number:      1,
		Author:      "alice",
		Milestone:   "v1.0",
		CreatedAt:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 3, 4, 12, 30, 0, 0, time.UTC),
	}
}

func TestStore_Upsert(t *testing.T) {
	t.Run("insert assigns an id and round-trips", func(t *testing.T) {
		s := newTestStore(t)
		rec := sampleRecord()

		require.NoError(t, s.Upsert(context.Background(), &rec))
		assert.NotEmpty(t, rec.ID)

		got, err := s.Get(context.Background(), rec.URL, rec.Type)
		require.NoError(t, err)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, rec.Project, got.Project)
		assert.Equal(t, rec.Priority, got.Priority)
		assert.Equal(t, rec.Tags, got.Tags)
		assert.Equal(t, rec.Annotations, got.Annotations)
		assert.Equal(t, rec.Description, got.Description)
		assert.Equal(t, rec.Title, got.Title)
		assert.Equal(t, rec.Body, got.Body)
		assert.Equal(t, rec.Repo, got.Repo)
		assert.Equal(t, rec.Number, got.Number)
		assert.Equal(t, rec.Author, got.Author)
		assert.Equal(t, rec.Milestone, got.Milestone)
		assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
		assert.True(t, rec.UpdatedAt.Equal(got.UpdatedAt))
	})

	t.Run("upserting the same key keeps the original id", func(t *testing.T) {
		s := newTestStore(t)
		first := sampleRecord()
		require.NoError(t, s.Upsert(context.Background(), &first))

		second := sampleRecord()
		second.Title = "Widget still breaks"
		require.NoError(t, s.Upsert(context.Background(), &second))

		assert.Equal(t, first.ID, second.ID)

		got, err := s.Get(context.Background(), first.URL, first.Type)
		require.NoError(t, err)
		assert.Equal(t, "Widget still breaks", got.Title)

		all, err := s.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("same url with different types are distinct records", func(t *testing.T) {
		s := newTestStore(t)
		issue := sampleRecord()
		require.NoError(t, s.Upsert(context.Background(), &issue))

		pr := sampleRecord()
		pr.Type = domain.TypePullRequest
		require.NoError(t, s.Upsert(context.Background(), &pr))

		all, err := s.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestStore_Get(t *testing.T) {
	t.Run("missing record returns ErrNotFound", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.Get(context.Background(), "https://example.test/none", domain.TypeIssue)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestStore_List(t *testing.T) {
	t.Run("orders by repo then number", func(t *testing.T) {
		s := newTestStore(t)
		for _, tc := range []struct {
			repo   string
			number int
		}{
			{"zeta/proj", 1},
			{"alice/proj", 2},
			{"alice/proj", 1},
		} {
			rec := sampleRecord()
			rec.Repo = tc.repo
			rec.Number = tc.number
			rec.URL = rec.Repo + "/" + rec.Title + string(rune('0'+tc.number))
			require.NoError(t, s.Upsert(context.Background(), &rec))
		}

		all, err := s.List(context.Background())

		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "alice/proj", all[0].Repo)
		assert.Equal(t, 1, all[0].Number)
		assert.Equal(t, 2, all[1].Number)
		assert.Equal(t, "zeta/proj", all[2].Repo)
	})
}
