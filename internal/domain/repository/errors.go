package repository

import "errors"

var (
	// ErrNotFound is returned when a row does not exist. Handlers also use it
	// for rows owned by someone else, so both render the same 404.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned on unique constraint violations (email,
	// tag/ingredient name). Surfaced as a validation failure, never a 500.
	ErrDuplicate = errors.New("duplicate value")
)
