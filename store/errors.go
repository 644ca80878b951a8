package store

import "errors"

var (
	// ErrNotFound is returned when a key does not exist in the store.
	ErrNotFound = errors.New("key not found")

	// ErrTypeMismatch is returned when a value is requested as a type
	// other than the one it was stored with.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrEmptyKey is returned when an operation is given an empty key.
	ErrEmptyKey = errors.New("key cannot be empty")
)
