package services

import (
	"errors"
	"fmt"

	"resep/internal/repositories"
)

// Error taxonomy surfaced to handlers. Handlers match with errors.Is and map
// to HTTP statuses: validation / duplicate / self-subscribe to 400, not-found
// to 404, forbidden to 403. Everything else is a server error.
var (
	// ErrNotFound marks a missing recipe, user, tag, ingredient or relation.
	ErrNotFound = repositories.ErrNotFound
	// ErrDuplicate marks a unique-constraint violation, e.g. favoriting the
	// same recipe twice.
	ErrDuplicate = repositories.ErrDuplicate
	// ErrValidation marks rejected input. The wrapping message names the
	// offending field. No partial write happens on a validation failure.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden marks a mutation attempted by someone other than the owner.
	ErrForbidden = errors.New("permission denied")
	// ErrSelfSubscribe marks an attempt to follow oneself.
	ErrSelfSubscribe = errors.New("cannot subscribe to yourself")
)

// validationError builds an ErrValidation with a field-level message.
func validationError(field, message string) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, field, message)
}
