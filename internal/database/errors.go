package database

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable is returned when no database location can be used.
	ErrStorageUnavailable = errors.New("structured storage is unavailable")
	// ErrDuplicateUsername is returned when registering an existing username.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrUserNotFound is returned when no user matches the username.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPassword is returned when the password does not match the stored hash.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrKeyNotFound is returned when a key-value slot is empty.
	ErrKeyNotFound = errors.New("key not found")
	// ErrIncompleteKey is returned when an exercise log key misses a component.
	ErrIncompleteKey = errors.New("exercise log key is incomplete")
)

// OpenError wraps an engine failure while opening or migrating the database.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open database %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
