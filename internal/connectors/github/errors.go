package github

import (
	"errors"
	"fmt"
)

// APIError represents a non-success API response. Any status outside 2xx
// aborts the in-flight operation entirely; no partial results are returned
// and no retry is attempted.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// NoRepositoryError indicates a payload carries no derivable repository tag:
// no repo field, no repos_url, no repository_url, or an URL the owner/name
// suffix pattern does not match. The offending item is carried for
// diagnostics.
type NoRepositoryError struct {
	IssueURL string
	Number   int
}

func (e *NoRepositoryError) Error() string {
	return fmt.Sprintf("github: issue #%d (%s) has no repository url", e.Number, e.IssueURL)
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}

// IsNoRepository checks if the error is a repository-resolution failure.
func IsNoRepository(err error) bool {
	var resErr *NoRepositoryError
	return errors.As(err, &resErr)
}
