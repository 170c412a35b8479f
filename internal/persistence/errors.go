// Package persistence defines the storage-level error contract shared by
// every repository adapter.
package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrConstraintViolation is returned when a record violates a storage
	// constraint, such as a non-positive id.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
)
