package domain

import "time"

// Item types derived for a remote issue.
const (
	TypeIssue       = "issue"
	TypePullRequest = "pull_request"
)

// Account is a user reference embedded in issue and comment payloads.
type Account struct {
	Login string `json:"login"`
}

// Label is a label attached to an issue.
type Label struct {
	Name string `json:"name"`
}

// Milestone is the milestone object attached to an issue, when present.
type Milestone struct {
	Title string `json:"title"`
}

// PullRequestRef marks an issue payload as a pull request. The API includes
// this object on issues that are pull requests; its presence is the marker,
// the fields are incidental.
type PullRequestRef struct {
	URL     string `json:"url"`
	HTMLURL string `json:"html_url"`
}

// RemoteIssue is one issue or pull request payload as returned by the API.
// Optional fields decode to zero values or nil; absence is normal, never an
// error. The one permitted mutation is Repo: the aggregator injects the
// resolved "owner/name" tag there before normalization.
type RemoteIssue struct {
	URL         string          `json:"url"`
	HTMLURL     string          `json:"html_url"`
	Number      int             `json:"number"`
	Title       string          `json:"title"`
	Body        string          `json:"body"`
	State       string          `json:"state"`
	User        Account         `json:"user"`
	Assignee    *Account        `json:"assignee"`
	Milestone   *Milestone      `json:"milestone"`
	Labels      []Label         `json:"labels"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	PullRequest *PullRequestRef `json:"pull_request"`

	// Repo is the resolved "owner/name" tag. Set by the aggregator; search
	// and user-scoped payloads arrive without it.
	Repo string `json:"repo"`

	// ReposURL and RepositoryURL are fallbacks for deriving Repo.
	ReposURL      string `json:"repos_url"`
	RepositoryURL string `json:"repository_url"`
}

// IsPullRequest returns true if the payload carries the pull-request marker.
func (i RemoteIssue) IsPullRequest() bool {
	return i.PullRequest != nil
}

// Type returns the derived item type for the payload.
func (i RemoteIssue) Type() string {
	if i.IsPullRequest() {
		return TypePullRequest
	}
	return TypeIssue
}

// MilestoneTitle returns the milestone's title, or "" when absent.
func (i RemoteIssue) MilestoneTitle() string {
	if i.Milestone == nil {
		return ""
	}
	return i.Milestone.Title
}

// AssigneeLogin returns the assignee's login, or "" when unassigned.
func (i RemoteIssue) AssigneeLogin() string {
	if i.Assignee == nil {
		return ""
	}
	return i.Assignee.Login
}

// Repository is a repository payload from the repo-listing endpoints.
type Repository struct {
	Name     string  `json:"name"`
	FullName string  `json:"full_name"`
	Owner    Account `json:"owner"`
	HTMLURL  string  `json:"html_url"`
	Fork     bool    `json:"fork"`
	Private  bool    `json:"private"`
}

// Comment is one comment on an issue or pull request.
type Comment struct {
	User      Account   `json:"user"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
