package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentials_Validate(t *testing.T) {
	t.Run("token credentials are valid", func(t *testing.T) {
		creds := NewTokenCredentials("ghp_abc")

		require.NoError(t, creds.Validate())
		assert.True(t, creds.IsToken())
	})

	t.Run("basic credentials are valid", func(t *testing.T) {
		creds := NewBasicCredentials("alice", "hunter2")

		require.NoError(t, creds.Validate())
		assert.False(t, creds.IsToken())
	})

	t.Run("empty credentials are invalid", func(t *testing.T) {
		var creds Credentials

		assert.ErrorIs(t, creds.Validate(), ErrInvalidCredentials)
	})

	t.Run("both arms set is invalid", func(t *testing.T) {
		creds := Credentials{
			Token: &TokenCredentials{Token: "ghp_abc"},
			Basic: &BasicCredentials{Username: "alice", Password: "hunter2"},
		}

		assert.ErrorIs(t, creds.Validate(), ErrInvalidCredentials)
	})

	t.Run("empty token is invalid", func(t *testing.T) {
		creds := NewTokenCredentials("")

		assert.ErrorIs(t, creds.Validate(), ErrInvalidCredentials)
	})
}

func TestRemoteIssue_Accessors(t *testing.T) {
	t.Run("type is pull_request when marker present", func(t *testing.T) {
		issue := RemoteIssue{PullRequest: &PullRequestRef{}}

		assert.True(t, issue.IsPullRequest())
		assert.Equal(t, TypePullRequest, issue.Type())
	})

	t.Run("type is issue without marker", func(t *testing.T) {
		issue := RemoteIssue{}

		assert.False(t, issue.IsPullRequest())
		assert.Equal(t, TypeIssue, issue.Type())
	})

	t.Run("missing milestone maps to empty title", func(t *testing.T) {
		assert.Equal(t, "", RemoteIssue{}.MilestoneTitle())
		assert.Equal(t, "v1.0", RemoteIssue{Milestone: &Milestone{Title: "v1.0"}}.MilestoneTitle())
	})

	t.Run("missing assignee maps to empty login", func(t *testing.T) {
		assert.Equal(t, "", RemoteIssue{}.AssigneeLogin())
		assert.Equal(t, "bob", RemoteIssue{Assignee: &Account{Login: "bob"}}.AssigneeLogin())
	})
}
