package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	ghapi "github.com/custodia-labs/taskpull-cli/internal/connectors/github"
	"github.com/custodia-labs/taskpull-cli/internal/core/domain"
	"github.com/custodia-labs/taskpull-cli/internal/logger"
	ghrecord "github.com/custodia-labs/taskpull-cli/internal/normalisers/github"
)

// TaggedIssue pairs a payload with the "owner/name" tag of the repository
// that owns it.
type TaggedIssue struct {
	Tag   string
	Issue domain.RemoteIssue
}

// AggregatorOptions carries the configuration knobs of the pipeline.
type AggregatorOptions struct {
	// Query is the free-form search expression. Empty disables the query
	// strategy.
	Query string

	// Username is the account whose repositories are fetched.
	Username string

	// IncludeUserRepos enables the owned-repo strategy.
	IncludeUserRepos bool

	// IncludeUserIssues enables the directly-assigned strategy.
	IncludeUserIssues bool

	// ImportAnnotations fetches issue comments into record annotations.
	ImportAnnotations bool
}

// Aggregator runs the enabled fetch strategies, merges the results into a
// URL-keyed set, prunes it through the filter chain, and projects the
// survivors into canonical records.
type Aggregator struct {
	client     *ghapi.Client
	filter     *Filter
	normalizer *ghrecord.Normalizer
	log        *logger.Logger
	opts       AggregatorOptions
}

// NewAggregator creates an aggregator. All collaborators are required.
func NewAggregator(
	client *ghapi.Client,
	filter *Filter,
	normalizer *ghrecord.Normalizer,
	log *logger.Logger,
	opts AggregatorOptions,
) *Aggregator {
	return &Aggregator{
		client:     client,
		filter:     filter,
		normalizer: normalizer,
		log:        log,
		opts:       opts,
	}
}

// Collect is phase 1: it runs the enabled strategies, merges by html_url
// (last write wins; payloads for one URL are equivalent), applies the final
// inclusion predicate, and returns the surviving set ordered by URL.
func (a *Aggregator) Collect(ctx context.Context) ([]TaggedIssue, error) {
	merged := make(map[string]TaggedIssue)

	if a.opts.Query != "" {
		if err := a.collectQuery(ctx, merged); err != nil {
			return nil, err
		}
	}

	if a.opts.IncludeUserRepos {
		if err := a.collectOwnedRepos(ctx, merged); err != nil {
			return nil, err
		}
	}

	if a.opts.IncludeUserIssues {
		if err := a.collectDirectlyAssigned(ctx, merged); err != nil {
			return nil, err
		}
	}

	a.log.Debug("found %d issues", len(merged))

	urls := make([]string, 0, len(merged))
	for u := range merged {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	survivors := make([]TaggedIssue, 0, len(merged))
	for _, u := range urls {
		item := merged[u]
		if a.filter.Include(item.Issue) {
			survivors = append(survivors, item)
		}
	}

	a.log.Debug("pruned down to %d issues", len(survivors))
	return survivors, nil
}

// collectQuery merges the search-query strategy. Items whose repository tag
// cannot be resolved are logged and dropped; search can surface repos
// outside the resolver's assumptions and one bad hit must not abort the
// import.
func (a *Aggregator) collectQuery(ctx context.Context, merged map[string]TaggedIssue) error {
	results, err := a.client.Search(ctx, a.opts.Query)
	if err != nil {
		return fmt.Errorf("query strategy: %w", err)
	}

	for _, issue := range results {
		tag, err := ghapi.ResolveRepoTag(issue)
		if err != nil {
			a.log.Warn("dropping search result: %v", err)
			continue
		}
		merged[issue.HTMLURL] = TaggedIssue{Tag: tag, Issue: issue}
	}
	return nil
}

// collectOwnedRepos merges the owned-repo strategy: list repositories, keep
// the ones the account owns that pass the repo filter, then fetch and tag
// each surviving repo's issues.
func (a *Aggregator) collectOwnedRepos(ctx context.Context, merged map[string]TaggedIssue) error {
	repos, err := a.client.Repos(ctx, a.opts.Username)
	if err != nil {
		return fmt.Errorf("owned-repo strategy: %w", err)
	}

	for _, repo := range repos {
		if !a.filter.Repo(repo) {
			continue
		}

		tag := a.opts.Username + "/" + repo.Name
		issues, err := a.client.Issues(ctx, a.opts.Username, repo.Name)
		if err != nil {
			return fmt.Errorf("owned-repo strategy: %w", err)
		}
		for _, issue := range issues {
			merged[issue.HTMLURL] = TaggedIssue{Tag: tag, Issue: issue}
		}
	}
	return nil
}

// collectDirectlyAssigned merges the directly-assigned strategy. Resolution
// failures are logged and dropped, matching the query path.
func (a *Aggregator) collectDirectlyAssigned(ctx context.Context, merged map[string]TaggedIssue) error {
	issues, err := a.client.DirectlyAssignedIssues(ctx)
	if err != nil {
		return fmt.Errorf("directly-assigned strategy: %w", err)
	}

	for _, issue := range issues {
		tag, err := ghapi.ResolveRepoTag(issue)
		if err != nil {
			a.log.Warn("dropping assigned issue: %v", err)
			continue
		}
		if !a.filter.IssueRepo(tag) {
			continue
		}
		merged[issue.HTMLURL] = TaggedIssue{Tag: tag, Issue: issue}
	}
	return nil
}

// Export runs the full pipeline and streams canonical records. The stream is
// a single pass and not restartable: phase 2 drives live comment fetches.
// Exactly one value is sent on the error channel when the stream aborts;
// both channels are closed when the stream ends.
func (a *Aggregator) Export(ctx context.Context) (<-chan domain.TaskRecord, <-chan error) {
	records := make(chan domain.TaskRecord)
	errs := make(chan error, 1)

	go func() {
		defer close(records)
		defer close(errs)

		survivors, err := a.Collect(ctx)
		if err != nil {
			errs <- err
			return
		}

		for _, item := range survivors {
			rec, err := a.record(ctx, item)
			if err != nil {
				errs <- err
				return
			}

			select {
			case records <- rec:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return records, errs
}

// record is phase 2 for a single survivor: materialize the resolved tag into
// the payload, derive type and project, fetch annotations on demand, and
// normalize.
func (a *Aggregator) record(ctx context.Context, item TaggedIssue) (domain.TaskRecord, error) {
	issue := item.Issue
	issue.Repo = item.Tag

	extra := ghrecord.Extra{
		Tag:     item.Tag,
		Project: projectFromTag(item.Tag),
		Type:    issue.Type(),
	}

	if a.opts.ImportAnnotations {
		annotations, err := a.annotations(ctx, item.Tag, issue.Number)
		if err != nil {
			return domain.TaskRecord{}, err
		}
		extra.Annotations = annotations
	}

	return a.normalizer.Normalize(issue, extra)
}

// annotations fetches the ordered comments of one issue as (author, body)
// pairs. A plain synchronous call; a transport failure here aborts the
// export stream.
func (a *Aggregator) annotations(ctx context.Context, tag string, number int) ([]domain.Annotation, error) {
	owner, name, ok := strings.Cut(tag, "/")
	if !ok {
		return nil, fmt.Errorf("malformed repo tag %q", tag)
	}

	comments, err := a.client.Comments(ctx, owner, name, number)
	if err != nil {
		return nil, err
	}

	a.log.Debug("got %d comments for %s#%d", len(comments), tag, number)

	annotations := make([]domain.Annotation, len(comments))
	for i, c := range comments {
		annotations[i] = domain.Annotation{Author: c.User.Login, Body: c.Body}
	}
	return annotations, nil
}

// projectFromTag derives the project from the second segment of the tag.
func projectFromTag(tag string) string {
	_, name, ok := strings.Cut(tag, "/")
	if !ok {
		return tag
	}
	return name
}
