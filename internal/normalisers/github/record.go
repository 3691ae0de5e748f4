package github

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/custodia-labs/taskpull-cli/internal/core/domain"
)

const (
	// PriorityHigh is forced onto every pull request.
	PriorityHigh = "H"

	// DefaultLabelTemplate renders the normalized label verbatim.
	DefaultLabelTemplate = "{{.Label}}"
)

// nonAlnumRegex matches every character a tag name must not contain.
var nonAlnumRegex = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Extra is the derived context the aggregator resolves for a payload before
// normalization: the admitting repo tag, the project and type derived from
// it, and the annotation pairs fetched on demand.
type Extra struct {
	Tag         string
	Project     string
	Type        string
	Annotations []domain.Annotation
}

// Normalizer maps one raw payload plus its derived context into the
// canonical flat record. Immutable after construction.
type Normalizer struct {
	defaultPriority string
	importLabels    bool
	labelTmpl       *template.Template
}

// labelContext is the rendering context bound for each label.
type labelContext struct {
	Label string
	Issue domain.RemoteIssue
}

// NewNormalizer creates a normalizer. labelTemplate may be empty, in which
// case the default template (the normalized label itself) is used.
func NewNormalizer(defaultPriority string, importLabels bool, labelTemplate string) (*Normalizer, error) {
	if labelTemplate == "" {
		labelTemplate = DefaultLabelTemplate
	}

	tmpl, err := template.New("label").Parse(labelTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse label template: %w", err)
	}

	return &Normalizer{
		defaultPriority: defaultPriority,
		importLabels:    importLabels,
		labelTmpl:       tmpl,
	}, nil
}

// Normalize produces the canonical record for one surviving payload.
func (n *Normalizer) Normalize(issue domain.RemoteIssue, extra Extra) (domain.TaskRecord, error) {
	priority := n.defaultPriority
	if extra.Type == domain.TypePullRequest {
		priority = PriorityHigh
	}

	tags, err := n.tags(issue)
	if err != nil {
		return domain.TaskRecord{}, err
	}

	annotations := extra.Annotations
	if annotations == nil {
		annotations = []domain.Annotation{}
	}

	return domain.TaskRecord{
		Project:     extra.Project,
		Priority:    priority,
		Tags:        tags,
		Annotations: annotations,
		Description: DefaultDescription(issue.Title, issue.HTMLURL, issue.Number, extra.Type),

		Title:     issue.Title,
		Body:      strings.ReplaceAll(issue.Body, "\r\n", "\n"),
		URL:       issue.HTMLURL,
		Repo:      extra.Tag,
		Type:      extra.Type,
		Number:    issue.Number,
		Author:    issue.User.Login,
		Milestone: issue.MilestoneTitle(),
		CreatedAt: issue.CreatedAt,
		UpdatedAt: issue.UpdatedAt,
	}, nil
}

// tags renders one tag per label, preserving label order. Empty unless label
// import is enabled.
func (n *Normalizer) tags(issue domain.RemoteIssue) ([]string, error) {
	tags := []string{}
	if !n.importLabels {
		return tags, nil
	}

	for _, label := range issue.Labels {
		var sb strings.Builder
		ctx := labelContext{
			Label: NormalizeLabel(label.Name),
			Issue: issue,
		}
		if err := n.labelTmpl.Execute(&sb, ctx); err != nil {
			return nil, fmt.Errorf("render label %q: %w", label.Name, err)
		}
		tags = append(tags, sb.String())
	}

	return tags, nil
}

// NormalizeLabel replaces every character outside [A-Za-z0-9] with "_".
func NormalizeLabel(label string) string {
	return nonAlnumRegex.ReplaceAllString(label, "_")
}

// DefaultDescription builds the record description from title, url, number
// and item type.
func DefaultDescription(title, url string, number int, itemType string) string {
	marker := "Is"
	if itemType == domain.TypePullRequest {
		marker = "PR"
	}
	return fmt.Sprintf("%s#%d - %s .. %s", marker, number, title, url)
}
