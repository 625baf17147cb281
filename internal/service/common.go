package service

import (
	"errors"

	"go-stock-ledger/pkg/apperr"
	"go-stock-ledger/pkg/validator"

	"gorm.io/gorm"
)

// validationError folds the first validator failure into the domain taxonomy.
func validationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return apperr.Validation("field '%s' failed on tag '%s'", first.FailedField, first.Tag)
}

// notFoundOr translates gorm's record-not-found into the domain error,
// passing every other storage error through untouched.
func notFoundOr(err error, entity string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}
