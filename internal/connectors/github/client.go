package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/taskpull-cli/internal/core/domain"
	"github.com/custodia-labs/taskpull-cli/internal/logger"
)

const (
	// DefaultHost is the public SaaS hostname.
	DefaultHost = "github.com"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// PerPage is the page size requested on every paginated endpoint.
	// Generous so the total round-trip count stays bounded.
	PerPage = 100
)

// Client performs authenticated, paginated reads against a GitHub-compatible
// REST API. The HTTP client and auth strategy are fixed at construction and
// never mutated afterwards.
type Client struct {
	baseURL    string
	httpClient *http.Client
	basic      *domain.BasicCredentials // nil in token mode
	limiter    *RateLimiter
	log        *logger.Logger
}

// NewClient creates a client for the given API host. The public SaaS host
// maps to its fixed API base; any other host is treated as a self-hosted
// instance with the API mounted under /api/v3.
func NewClient(host string, creds domain.Credentials, log *logger.Logger) (*Client, error) {
	return NewClientWithBaseURL(apiBase(host), creds, log)
}

// NewClientWithBaseURL creates a client against an explicit API base URL.
// Useful for tests and nonstandard deployments.
func NewClientWithBaseURL(baseURL string, creds domain.Credentials, log *logger.Logger) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: baseURL,
		limiter: NewRateLimiter(),
		log:     log,
	}

	// Dispatch the auth strategy once. Token mode installs a persistent
	// Authorization header via the oauth2 transport; basic mode applies
	// credentials per request. Never both.
	if creds.IsToken() {
		ts := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: creds.Token.Token,
			// "token" is passed through verbatim by oauth2, producing the
			// `Authorization: token <t>` header the API documents.
			TokenType: "token",
		})
		tc := oauth2.NewClient(context.Background(), ts)
		tc.Timeout = DefaultTimeout
		c.httpClient = tc
	} else {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
		c.basic = creds.Basic
	}

	return c, nil
}

// DisableThrottle removes the proactive request spacing. Reactive header
// tracking stays in place. Meant for tests and self-hosted instances without
// rate limits.
func (c *Client) DisableThrottle() {
	c.limiter = newRateLimiter(rate.Inf)
}

// apiBase selects the API base URL for a host.
func apiBase(host string) string {
	if host == DefaultHost {
		return "https://api.github.com"
	}
	return fmt.Sprintf("https://%s/api/v3", host)
}

// url builds the full URL for an API path.
func (c *Client) url(path string) string {
	return c.baseURL + path
}

// Repos returns the authenticated user's own repositories concatenated with
// the target username's public repositories. Two independent paginated
// fetches.
func (c *Client) Repos(ctx context.Context, username string) ([]domain.Repository, error) {
	own, err := getPaginated[domain.Repository](
		ctx, c, c.url(fmt.Sprintf("/user/repos?per_page=%d", PerPage)), "")
	if err != nil {
		return nil, fmt.Errorf("list own repos: %w", err)
	}

	public, err := getPaginated[domain.Repository](
		ctx, c, c.url(fmt.Sprintf("/users/%s/repos?per_page=%d", username, PerPage)), "")
	if err != nil {
		return nil, fmt.Errorf("list public repos for %s: %w", username, err)
	}

	return append(own, public...), nil
}

// Search runs a free-form issue/PR search query. Search responses nest their
// results under an "items" key rather than at the top level.
func (c *Client) Search(ctx context.Context, query string) ([]domain.RemoteIssue, error) {
	u := c.url(fmt.Sprintf("/search/issues?q=%s&per_page=%d", url.QueryEscape(query), PerPage))
	issues, err := getPaginated[domain.RemoteIssue](ctx, c, u, "items")
	if err != nil {
		return nil, fmt.Errorf("search issues: %w", err)
	}
	return issues, nil
}

// Issues returns all issues of a repository.
func (c *Client) Issues(ctx context.Context, owner, repo string) ([]domain.RemoteIssue, error) {
	u := c.url(fmt.Sprintf("/repos/%s/%s/issues?per_page=%d", owner, repo, PerPage))
	issues, err := getPaginated[domain.RemoteIssue](ctx, c, u, "")
	if err != nil {
		return nil, fmt.Errorf("list issues for %s/%s: %w", owner, repo, err)
	}
	return issues, nil
}

// Pulls returns all pull requests of a repository.
func (c *Client) Pulls(ctx context.Context, owner, repo string) ([]domain.RemoteIssue, error) {
	u := c.url(fmt.Sprintf("/repos/%s/%s/pulls?per_page=%d", owner, repo, PerPage))
	pulls, err := getPaginated[domain.RemoteIssue](ctx, c, u, "")
	if err != nil {
		return nil, fmt.Errorf("list pulls for %s/%s: %w", owner, repo, err)
	}
	return pulls, nil
}

// Comments returns the ordered comments of one issue or pull request.
func (c *Client) Comments(ctx context.Context, owner, repo string, number int) ([]domain.Comment, error) {
	u := c.url(fmt.Sprintf("/repos/%s/%s/issues/%d/comments?per_page=%d", owner, repo, number, PerPage))
	comments, err := getPaginated[domain.Comment](ctx, c, u, "")
	if err != nil {
		return nil, fmt.Errorf("list comments for %s/%s#%d: %w", owner, repo, number, err)
	}
	return comments, nil
}

// DirectlyAssignedIssues returns all issues assigned to the authenticated
// user, regardless of whether the user owns the repositories they live in.
func (c *Client) DirectlyAssignedIssues(ctx context.Context) ([]domain.RemoteIssue, error) {
	u := c.url(fmt.Sprintf("/user/issues?per_page=%d", PerPage))
	issues, err := getPaginated[domain.RemoteIssue](ctx, c, u, "")
	if err != nil {
		return nil, fmt.Errorf("list assigned issues: %w", err)
	}
	return issues, nil
}

// Viewer returns the authenticated user. A cheap way to validate credentials
// before running an import.
func (c *Client) Viewer(ctx context.Context) (domain.Account, error) {
	var account domain.Account
	body, _, err := c.getPage(ctx, c.url("/user"))
	if err != nil {
		return account, fmt.Errorf("get viewer: %w", err)
	}
	if err := json.Unmarshal(body, &account); err != nil {
		return account, fmt.Errorf("decode viewer: %w", err)
	}
	return account, nil
}

// getPaginated walks a paginated endpoint: GET, decode, optionally descend
// into a sub-key, accumulate, then follow the Link header's rel="next" URL.
// Termination relies solely on the server omitting "next" on the last page.
func getPaginated[T any](ctx context.Context, c *Client, startURL, subkey string) ([]T, error) {
	var results []T

	next := startURL
	for next != "" {
		body, links, err := c.getPage(ctx, next)
		if err != nil {
			return nil, err
		}

		page := body
		if subkey != "" {
			var envelope map[string]json.RawMessage
			if err := json.Unmarshal(body, &envelope); err != nil {
				return nil, fmt.Errorf("decode page %s: %w", next, err)
			}
			sub, ok := envelope[subkey]
			if !ok {
				return nil, fmt.Errorf("page %s has no %q key", next, subkey)
			}
			page = sub
		}

		var items []T
		if err := json.Unmarshal(page, &items); err != nil {
			return nil, fmt.Errorf("decode page %s: %w", next, err)
		}
		results = append(results, items...)

		next = links["next"]
	}

	return results, nil
}

// getPage issues one authenticated GET and returns the response body along
// with the parsed Link header relations.
func (c *Client) getPage(ctx context.Context, rawURL string) ([]byte, map[string]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.basic != nil {
		req.SetBasicAuth(c.basic.Username, c.basic.Password)
	}

	c.log.Debug("GET %s", rawURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	c.limiter.UpdateFromResponse(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    apiErrorMessage(body, resp.StatusCode),
			URL:        rawURL,
		}
	}

	return body, ParseLinkHeader(resp.Header.Get("Link")), nil
}

// apiErrorMessage extracts the server's error message, falling back to the
// standard status text.
func apiErrorMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return http.StatusText(status)
}
