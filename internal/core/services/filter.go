package services

import (
	"slices"
	"strings"

	"github.com/custodia-labs/taskpull-cli/internal/core/domain"
)

// Filter holds the pure inclusion predicates of the pipeline. Predicates
// compose by logical AND where chained; a zero Filter accepts everything.
type Filter struct {
	// Username is the account whose owned repositories are considered.
	Username string

	// ExcludeRepos rejects matching repo names outright.
	ExcludeRepos []string

	// IncludeRepos, when non-empty, accepts only matching repo names.
	// Disjoint use with ExcludeRepos is expected.
	IncludeRepos []string

	// FilterPullRequests subjects pull requests to BaseInclude instead of
	// admitting them unconditionally.
	FilterPullRequests bool

	// BaseInclude is the default inclusion policy deferred to for issues
	// and for pull requests when FilterPullRequests is set. Nil accepts
	// everything.
	BaseInclude func(domain.RemoteIssue) bool
}

// IncludeOpen is the default base inclusion policy: only open items survive.
func IncludeOpen(issue domain.RemoteIssue) bool {
	return issue.State == "open"
}

// RepoName decides inclusion for a bare repository name.
// Exclude-list hit rejects; a configured include-list then decides by
// membership; otherwise everything is accepted.
func (f *Filter) RepoName(name string) bool {
	if slices.Contains(f.ExcludeRepos, name) {
		return false
	}

	if len(f.IncludeRepos) > 0 {
		return slices.Contains(f.IncludeRepos, name)
	}

	return true
}

// Repo decides inclusion for a repository from the "list my repos" fetch.
// Org repositories the account can see but does not own are rejected before
// the name filter applies.
func (f *Filter) Repo(repo domain.Repository) bool {
	if repo.Owner.Login != f.Username {
		return false
	}
	return f.RepoName(repo.Name)
}

// IssueRepo decides inclusion for a directly-assigned issue by the name part
// of its resolved "owner/name" tag.
func (f *Filter) IssueRepo(tag string) bool {
	_, name, ok := strings.Cut(tag, "/")
	if !ok {
		name = tag
	}
	return f.RepoName(name)
}

// Include is the final predicate applied to the merged set. Pull requests
// bypass the base policy unless pull-request filtering is enabled.
func (f *Filter) Include(issue domain.RemoteIssue) bool {
	if issue.IsPullRequest() && !f.FilterPullRequests {
		return true
	}
	if f.BaseInclude == nil {
		return true
	}
	return f.BaseInclude(issue)
}
