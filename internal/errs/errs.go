// Package errs holds the sentinel errors shared by every Syllabus package.
// They are re-exported from the root package; import them from there.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNoStore                     = errors.New("syllabus: store is required")
	ErrStoreClosed                 = errors.New("syllabus: store is closed")
	ErrMigrationFailed             = errors.New("syllabus: migration failed")
	ErrDuplicateName               = errors.New("syllabus: name already exists")
	ErrEntityNotFound              = errors.New("syllabus: entity not found")
	ErrCategoryNotFound            = errors.New("syllabus: category not found")
	ErrSubCategoryNotFound         = errors.New("syllabus: subcategory not found")
	ErrCourseNotFound              = errors.New("syllabus: course not found")
	ErrSubCategoryCategoryMismatch = errors.New("syllabus: subcategories must belong to the selected categories")
	ErrValidation                  = errors.New("syllabus: validation failed")
)

// Targeted marks a tier not-found error as the operation's own target being
// gone by wrapping it with ErrEntityNotFound. Other errors pass through.
func Targeted(err, notFound error) error {
	if err == nil || !errors.Is(err, notFound) || errors.Is(err, ErrEntityNotFound) {
		return err
	}
	return Gone(err)
}

// Gone wraps a tier not-found error with ErrEntityNotFound.
func Gone(notFound error) error {
	return fmt.Errorf("%w: %w", ErrEntityNotFound, notFound)
}
