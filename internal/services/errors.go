package services

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced by the service layer. Handlers map each kind to an
// HTTP status; anything not matching one of these is an unexpected internal
// failure and becomes a 500.
var (
	// ErrNotFound means the requested resource id does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNoChanges means a partial update touched no allow-listed field.
	ErrNoChanges = errors.New("no valid fields to update")

	// ErrMissingIdentifier means a login request carried neither username nor email.
	ErrMissingIdentifier = errors.New("enter username or email")

	// ErrNoSuchUser means the login identifier matched no account.
	ErrNoSuchUser = errors.New("bad email or username, user does not exist")

	// ErrBadPassword means the account exists but the password did not verify.
	ErrBadPassword = errors.New("bad password")

	// ErrInvalidToken means a token failed signature or shape checks.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken means a token's expiry has elapsed.
	ErrExpiredToken = errors.New("token has expired")

	// ErrWrongTokenType means an access token was presented where a refresh
	// token was expected, or vice versa.
	ErrWrongTokenType = errors.New("wrong token type")
)

// ConflictError reports a uniqueness violation on the named field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("that %s already exists", e.Field)
}

// ValidationError carries per-field complaints for a payload that failed
// schema validation. Nothing is persisted when it is returned.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
