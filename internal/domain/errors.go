package domain

import "fmt"

// StaleTokenError means the bearer token is expired, revoked or its backing
// session row no longer exists.
type StaleTokenError struct {
	Reason string
}

func (e *StaleTokenError) Error() string {
	if e.Reason == "" {
		return "token is no longer valid, log in again"
	}
	return "token is no longer valid: " + e.Reason
}

func (e *StaleTokenError) Kind() string { return "StaleTokenError" }

// AuthRequiredError is returned when a route that needs a session is called
// without a token.
type AuthRequiredError struct{}

func (e *AuthRequiredError) Error() string { return "a bearer token is required for this route" }
func (e *AuthRequiredError) Kind() string  { return "AuthRequiredError" }

// ValidationError reports a rejected input value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Kind() string { return "ValidationError" }

// Invalid is shorthand for a field-level ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError is returned when a resource does not exist or is not owned by
// the caller. Both cases look the same from outside.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Kind() string { return "NotFoundError" }

// IdentityError carries an error reported by the identity provider. Code is
// the provider's error code when it sent one.
type IdentityError struct {
	Status  int
	Code    string
	Message string
}

func (e *IdentityError) Error() string { return e.Message }

func (e *IdentityError) Kind() string {
	if e.Code != "" {
		return e.Code
	}
	return "AuthApiError"
}

type GitHubAuthError struct {
	Message string
}

func (e *GitHubAuthError) Error() string { return e.Message }
func (e *GitHubAuthError) Kind() string  { return "GitHubAuthError" }

type GitHubAPIError struct {
	Message string
	Err     error
}

func (e *GitHubAPIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *GitHubAPIError) Unwrap() error { return e.Err }
func (e *GitHubAPIError) Kind() string  { return "GitHubAPIError" }

// CompileError holds the compiler log of a failed LaTeX build.
type CompileError struct {
	Log string
}

func (e *CompileError) Error() string { return "latex compilation failed: " + e.Log }
func (e *CompileError) Kind() string  { return "CompileError" }

type RateLimitError struct{}

func (e *RateLimitError) Error() string { return "too many requests, slow down" }
func (e *RateLimitError) Kind() string  { return "RateLimitError" }
