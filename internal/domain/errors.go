package domain

import "errors"

var (
	// ErrNotFound marks a page or block that is absent or was deleted.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied marks a row owned by a different user.
	ErrAccessDenied = errors.New("access denied")

	// ErrValidation marks input rejected before any store or network call
	// (empty title, empty folder name, unknown block type).
	ErrValidation = errors.New("validation failed")
)
