package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials indicates the credentials are missing or carry
	// both a token and a basic pair.
	ErrInvalidCredentials = errors.New("exactly one of token or basic credentials must be set")

	// ErrInvalidConfig indicates the configuration failed validation.
	// Configuration errors are fatal and reported before any network activity.
	ErrInvalidConfig = errors.New("invalid configuration")
)
