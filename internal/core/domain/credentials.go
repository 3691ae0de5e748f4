package domain

// Credentials selects the authentication strategy for the API client.
// Exactly one arm is set: Token for header-based token auth, Basic for
// HTTP basic auth. The choice is dispatched once at client construction
// and never changes for the client's lifetime.
type Credentials struct {
	// Token holds a static access token (nil for basic auth).
	Token *TokenCredentials

	// Basic holds a username/password pair (nil for token auth).
	Basic *BasicCredentials
}

// TokenCredentials stores a static access token.
type TokenCredentials struct {
	Token string
}

// BasicCredentials stores a username/password pair for HTTP basic auth.
type BasicCredentials struct {
	Username string
	Password string
}

// NewTokenCredentials creates token-mode credentials.
func NewTokenCredentials(token string) Credentials {
	return Credentials{Token: &TokenCredentials{Token: token}}
}

// NewBasicCredentials creates basic-auth credentials.
func NewBasicCredentials(username, password string) Credentials {
	return Credentials{Basic: &BasicCredentials{Username: username, Password: password}}
}

// Validate checks that exactly one credential arm is populated.
func (c Credentials) Validate() error {
	hasToken := c.Token != nil && c.Token.Token != ""
	hasBasic := c.Basic != nil && c.Basic.Username != "" && c.Basic.Password != ""

	if hasToken == hasBasic {
		return ErrInvalidCredentials
	}
	return nil
}

// IsToken returns true if the credentials use token auth.
func (c Credentials) IsToken() bool {
	return c.Token != nil && c.Token.Token != ""
}
