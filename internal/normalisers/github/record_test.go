package github

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskpull-cli/internal/core/domain"
)

func newNormalizer(t *testing.T, priority string, importLabels bool, labelTemplate string) *Normalizer {
	t.Helper()
	n, err := NewNormalizer(priority, importLabels, labelTemplate)
	require.NoError(t, err)
	return n
}

func TestNormalizer_Priority(t *testing.T) {
	t.Run("pull requests always normalize to high priority", func(t *testing.T) {
		n := newNormalizer(t, "L", false, "")
		issue := domain.RemoteIssue{PullRequest: &domain.PullRequestRef{}}

		rec, err := n.Normalize(issue, Extra{Type: domain.TypePullRequest})

		require.NoError(t, err)
		assert.Equal(t, PriorityHigh, rec.Priority)
	})

	t.Run("issues take the configured default", func(t *testing.T) {
		n := newNormalizer(t, "L", false, "")

		rec, err := n.Normalize(domain.RemoteIssue{}, Extra{Type: domain.TypeIssue})

		require.NoError(t, err)
		assert.Equal(t, "L", rec.Priority)
	})
}

func TestNormalizer_Body(t *testing.T) {
	t.Run("CRLF line endings are normalized to LF", func(t *testing.T) {
		n := newNormalizer(t, "M", false, "")
		issue := domain.RemoteIssue{Body: "line one\r\nline two\r\n"}

		rec, err := n.Normalize(issue, Extra{Type: domain.TypeIssue})

		require.NoError(t, err)
		assert.Equal(t, "line one\nline two\n", rec.Body)
	})

	t.Run("empty body stays empty", func(t *testing.T) {
		n := newNormalizer(t, "M", false, "")

		rec, err := n.Normalize(domain.RemoteIssue{}, Extra{Type: domain.TypeIssue})

		require.NoError(t, err)
		assert.Equal(t, "", rec.Body)
	})
}

func TestNormalizer_Milestone(t *testing.T) {
	t.Run("milestone title is copied when present", func(t *testing.T) {
		n := newNormalizer(t, "M", false, "")
		issue := domain.RemoteIssue{Milestone: &domain.Milestone{Title: "v2.0"}}

		rec, err := n.Normalize(issue, Extra{Type: domain.TypeIssue})

		require.NoError(t, err)
		assert.Equal(t, "v2.0", rec.Milestone)
	})

	t.Run("missing milestone maps to empty", func(t *testing.T) {
		n := newNormalizer(t, "M", false, "")

		rec, err := n.Normalize(domain.RemoteIssue{}, Extra{Type: domain.TypeIssue})

		require.NoError(t, err)
		assert.Equal(t, "", rec.Milestone)
	})
}

func TestNormalizer_Tags(t *testing.T) {
	t.Run("empty when label import is disabled", func(t *testing.T) {
		n := newNormalizer(t, "M", false, "")
		issue := domain.RemoteIssue{Labels: []domain.Label{{Name: "bug"}}}

		rec, err := n.Normalize(issue, Extra{Type: domain.TypeIssue})

		require.NoError(t, err)
		assert.Empty(t, rec.Tags)
	})

	t.Run("one tag per label in label order", func(t *testing.T) {
		n := newNormalizer(t, "M", true, "")
		issue := domain.RemoteIssue{Labels: []domain.Label{
			{Name: "bug"},
			{Name: "help wanted"},
			{Name: "Bug: Critical!"},
		}}

		rec, err := n.Normalize(issue, Extra{Type: domain.TypeIssue})

		require.NoError(t, err)
		assert.Equal(t, []string{"bug", "help_wanted", "Bug__Critical_"}, rec.Tags)
	})

	t.Run("custom template binds normalized label and issue", func(t *testing.T) {
		n := newNormalizer(t, "M", true, "gh_{{.Label}}_{{.Issue.Number}}")
		issue := domain.RemoteIssue{
			Number: 9,
			Labels: []domain.Label{{Name: "bug"}},
		}

		rec, err := n.Normalize(issue, Extra{Type: domain.TypeIssue})

		require.NoError(t, err)
		assert.Equal(t, []string{"gh_bug_9"}, rec.Tags)
	})

	t.Run("bad template fails construction", func(t *testing.T) {
		_, err := NewNormalizer("M", true, "{{.Label")

		assert.Error(t, err)
	})
}

func TestNormalizeLabel(t *testing.T) {
	t.Run("replaces every non-alphanumeric character", func(t *testing.T) {
		assert.Equal(t, "Bug__Critical_", NormalizeLabel("Bug: Critical!"))
		assert.Equal(t, "bug", NormalizeLabel("bug"))
		assert.Equal(t, "a_b_c", NormalizeLabel("a b-c"))
	})
}

func TestNormalizer_Fields(t *testing.T) {
	t.Run("copies the full field set from the payload", func(t *testing.T) {
		created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		updated := time.Date(2024, 3, 4, 12, 30, 0, 0, time.UTC)
		n := newNormalizer(t, "M", false, "")
		issue := domain.RemoteIssue{
			HTMLURL:   "https://github.com/alice/proj/issues/7",
			Number:    7,
			Title:     "Widget breaks",
			Body:      "details",
			User:      domain.Account{Login: "bob"},
			CreatedAt: created,
			UpdatedAt: updated,
		}
		extra := Extra{
			Tag:     "alice/proj",
			Project: "proj",
			Type:    domain.TypeIssue,
			Annotations: []domain.Annotation{
				{Author: "eve", Body: "me too"},
			},
		}

		rec, err := n.Normalize(issue, extra)

		require.NoError(t, err)
		assert.Equal(t, "proj", rec.Project)
		assert.Equal(t, "alice/proj", rec.Repo)
		assert.Equal(t, domain.TypeIssue, rec.Type)
		assert.Equal(t, "Widget breaks", rec.Title)
		assert.Equal(t, "https://github.com/alice/proj/issues/7", rec.URL)
		assert.Equal(t, 7, rec.Number)
		assert.Equal(t, "bob", rec.Author)
		assert.Equal(t, created, rec.CreatedAt)
		assert.Equal(t, updated, rec.UpdatedAt)
		assert.Equal(t, []domain.Annotation{{Author: "eve", Body: "me too"}}, rec.Annotations)
		assert.Equal(t, "Is#7 - Widget breaks .. https://github.com/alice/proj/issues/7", rec.Description)
	})
}

func TestDefaultDescription(t *testing.T) {
	t.Run("marks pull requests and issues differently", func(t *testing.T) {
		assert.Equal(t, "Is#1 - t .. u", DefaultDescription("t", "u", 1, domain.TypeIssue))
		assert.Equal(t, "PR#1 - t .. u", DefaultDescription("t", "u", 1, domain.TypePullRequest))
	})
}
