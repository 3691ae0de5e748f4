package github

import (
	"regexp"

	"github.com/custodia-labs/taskpull-cli/internal/core/domain"
)

// repoTagRegex extracts the trailing "owner/name" from a repository URL.
var repoTagRegex = regexp.MustCompile(`.*/([^/]+/[^/]+)$`)

// ResolveRepoTag derives the "owner/name" repository tag for an issue
// payload. Precedence: an already-materialized repo field wins verbatim;
// otherwise the repos_url, then repository_url, is matched against the
// trailing two path segments. Payloads carrying none of the three fail with
// a *NoRepositoryError.
func ResolveRepoTag(issue domain.RemoteIssue) (string, error) {
	if issue.Repo != "" {
		return issue.Repo, nil
	}

	var candidate string
	switch {
	case issue.ReposURL != "":
		candidate = issue.ReposURL
	case issue.RepositoryURL != "":
		candidate = issue.RepositoryURL
	default:
		return "", &NoRepositoryError{IssueURL: issue.HTMLURL, Number: issue.Number}
	}

	matches := repoTagRegex.FindStringSubmatch(candidate)
	if matches == nil {
		return "", &NoRepositoryError{IssueURL: issue.HTMLURL, Number: issue.Number}
	}
	return matches[1], nil
}
