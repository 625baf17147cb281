// Package apperr defines the domain error taxonomy. Every failed operation
// leaves the store unchanged; callers match with errors.Is and decide whether
// to resubmit. None of these are transient faults, so nothing is retried.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: a referenced entity id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey: unique key collision on creation (e.g. product SKU).
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrInsufficientStock: an outbound movement exceeds on-hand quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrReferentialIntegrity: deletion blocked by dependent records.
	ErrReferentialIntegrity = errors.New("dependent records exist")
	// ErrValidation: malformed input, rejected before any store access.
	ErrValidation = errors.New("validation failed")
)

func NotFound(entity string, id any) error {
	return fmt.Errorf("%w: %s %v", ErrNotFound, entity, id)
}

func DuplicateKey(key, value string) error {
	return fmt.Errorf("%w: %s '%s' already exists", ErrDuplicateKey, key, value)
}

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// HTTPStatus maps a domain error to the status code handlers respond with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrDuplicateKey), errors.Is(err, ErrReferentialIntegrity):
		return 409
	case errors.Is(err, ErrInsufficientStock):
		return 422
	case errors.Is(err, ErrValidation):
		return 400
	default:
		return 500
	}
}
