package repositories

import "errors"

// Sentinel errors shared by all repositories. Implementations wrap these with
// fmt.Errorf so callers can match with errors.Is while logs keep the context.
var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint,
	// e.g. adding the same favorite twice or reusing a tag slug.
	ErrDuplicate = errors.New("record already exists")
)
