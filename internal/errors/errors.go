package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrUserConflict is returned when username or email is already taken.
	ErrUserConflict = errors.New("username or email already exists")
	// ErrInvalidCredentials is returned on any login failure. Unknown
	// username and wrong password produce the same error so callers
	// cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// NotFoundError reports an absent entity. The message format is part of
// the API contract ("Farm with ID 3 not found").
type NotFoundError struct {
	Entity string
	Key    string // "ID" or "username"
	Value  interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with %s %v not found", e.Entity, e.Key, e.Value)
}

// NewNotFound builds a NotFoundError keyed by numeric id.
func NewNotFound(entity string, id interface{}) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: "ID", Value: id}
}

// NewNotFoundByUsername builds a NotFoundError keyed by username.
func NewNotFoundByUsername(entity, username string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: "username", Value: username}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
