// Package file loads and validates the taskpull configuration from a TOML
// file. Validation runs before any network activity; a bad config is fatal.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/taskpull-cli/internal/core/domain"
)

// Validation errors.
var (
	// ErrMissingLogin indicates the config has no login.
	ErrMissingLogin = errors.New("config has no login")

	// ErrMissingUsername indicates the config has no username.
	ErrMissingUsername = errors.New("config has no username")

	// ErrMissingCredentials indicates neither token nor password is set.
	ErrMissingCredentials = errors.New("config has no token or password")

	// ErrAmbiguousCredentials indicates both token and password are set.
	ErrAmbiguousCredentials = errors.New("config has both token and password")
)

// Config is the full configuration surface of an import run.
type Config struct {
	// Host is the API host. The public SaaS host by default.
	Host string `toml:"host"`

	// Login is the account used to authenticate.
	Login string `toml:"login"`

	// Username is the account whose repositories and issues are imported.
	Username string `toml:"username"`

	// Token and Password select the auth strategy; exactly one must be set.
	// Password pairs with Login for basic auth.
	Token    string `toml:"token"`
	Password string `toml:"password"`

	ExcludeRepos []string `toml:"exclude_repos"`
	IncludeRepos []string `toml:"include_repos"`

	FilterPullRequests bool `toml:"filter_pull_requests"`
	InvolvedIssues     bool `toml:"involved_issues"`
	ImportLabelsAsTags bool `toml:"import_labels_as_tags"`

	// LabelTemplate renders each imported label into a tag.
	LabelTemplate string `toml:"label_template"`

	// Query is the free-form search expression. When empty and
	// InvolvedIssues is set, a default "involves:<username> state:open"
	// expression is synthesized.
	Query string `toml:"query"`

	IncludeUserRepos  bool `toml:"include_user_repos"`
	IncludeUserIssues bool `toml:"include_user_issues"`

	// AnnotationComments imports issue comments as record annotations.
	AnnotationComments bool `toml:"annotation_comments"`

	// DefaultPriority is assigned to issues; pull requests are always high.
	DefaultPriority string `toml:"default_priority"`
}

// DefaultConfig returns a config with every default applied.
func DefaultConfig() *Config {
	return &Config{
		Host:               "github.com",
		LabelTemplate:      "{{.Label}}",
		IncludeUserRepos:   true,
		IncludeUserIssues:  true,
		AnnotationComments: true,
		DefaultPriority:    "M",
	}
}

// DefaultPath returns the default config file location, ~/.taskpull/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskpull", "config.toml"), nil
}

// Load reads a TOML config file. Keys absent from the file keep their
// defaults. An empty path means the default location.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Validate enforces the configuration contract: login required, username
// required, exactly one of token/password. Errors wrap
// domain.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Login == "" {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, ErrMissingLogin)
	}
	if c.Token == "" && c.Password == "" {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, ErrMissingCredentials)
	}
	if c.Token != "" && c.Password != "" {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, ErrAmbiguousCredentials)
	}
	if c.Username == "" {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, ErrMissingUsername)
	}
	return nil
}

// Credentials maps the config onto the client's credential variant.
func (c *Config) Credentials() domain.Credentials {
	if c.Token != "" {
		return domain.NewTokenCredentials(c.Token)
	}
	return domain.NewBasicCredentials(c.Login, c.Password)
}

// EffectiveQuery returns the search expression to run: the configured query,
// or the synthesized involves-expression, or empty (query strategy off).
func (c *Config) EffectiveQuery() string {
	if c.Query != "" {
		return c.Query
	}
	if c.InvolvedIssues {
		return fmt.Sprintf("involves:%s state:open", c.Username)
	}
	return ""
}

// KeyringService returns the service identity string used to label this
// account in logs and external credential stores.
func (c *Config) KeyringService() string {
	return fmt.Sprintf("github://%s@%s/%s", c.Login, c.Host, c.Username)
}
