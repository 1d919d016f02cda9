package syllabus

import (
	"errors"

	"github.com/xraph/syllabus/internal/errs"
)

// Sentinel errors returned by Syllabus operations.
var (
	// ErrNoStore is returned when a Syllabus is created without a store.
	ErrNoStore = errs.ErrNoStore

	// ErrStoreClosed is returned when a store operation is attempted after the store is closed.
	ErrStoreClosed = errs.ErrStoreClosed

	// ErrMigrationFailed is returned when a database migration fails.
	ErrMigrationFailed = errs.ErrMigrationFailed

	// ErrDuplicateName is returned when a create or rename collides with an
	// active Category or Course of the same name.
	ErrDuplicateName = errs.ErrDuplicateName

	// ErrEntityNotFound is returned, alongside the tier's own not-found
	// error, when the record an operation targets by id is missing or
	// soft-deleted. A missing referenced parent does not carry it.
	ErrEntityNotFound = errs.ErrEntityNotFound

	// ErrCategoryNotFound is returned when a category id does not resolve to an active category.
	ErrCategoryNotFound = errs.ErrCategoryNotFound

	// ErrSubCategoryNotFound is returned when one or more subcategory ids do
	// not resolve to active subcategories.
	ErrSubCategoryNotFound = errs.ErrSubCategoryNotFound

	// ErrCourseNotFound is returned when a targeted course is missing or soft-deleted.
	ErrCourseNotFound = errs.ErrCourseNotFound

	// ErrSubCategoryCategoryMismatch is returned when subcategories do not belong
	// to any of the selected categories. See consistency.MismatchError.
	ErrSubCategoryCategoryMismatch = errs.ErrSubCategoryCategoryMismatch

	// ErrValidation is returned when an input fails field-shape validation.
	ErrValidation = errs.ErrValidation
)

// IsNotFound reports whether err means a referenced or targeted record is
// missing or soft-deleted.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntityNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrSubCategoryNotFound) ||
		errors.Is(err, ErrCourseNotFound)
}
