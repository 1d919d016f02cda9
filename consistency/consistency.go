// Package consistency enforces the cross-tier reference rule between
// courses, subcategories and categories.
//
// A course may only reference subcategories whose parent category is one of
// the course's own categories. The check is a pure read.
package consistency

import (
	"context"
	"log/slog"
	"strings"

	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/internal/errs"
	"github.com/xraph/syllabus/subcategory"
)

// SubCategoryFinder resolves active subcategories by id. Missing and
// soft-deleted ids are omitted from the result.
type SubCategoryFinder interface {
	FindByIDs(ctx context.Context, ids []id.ID) ([]*subcategory.SubCategory, error)
}

// Validator checks that subcategories belong to a set of categories.
type Validator struct {
	finder SubCategoryFinder
	logger *slog.Logger
}

// NewValidator creates a Validator backed by finder.
func NewValidator(finder SubCategoryFinder, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{finder: finder, logger: logger}
}

// ValidateSubCategoriesBelongToCategories fails with
// syllabus.ErrSubCategoryNotFound when any requested subcategory is missing
// or deleted, and with *MismatchError when any resolved subcategory's
// category is not among categoryIDs.
//
// The requested count is len(subCategoryIDs) as given, so an id repeated in
// the request is reported as not found.
func (v *Validator) ValidateSubCategoriesBelongToCategories(ctx context.Context, categoryIDs, subCategoryIDs []id.ID) error {
	subs, err := v.finder.FindByIDs(ctx, subCategoryIDs)
	if err != nil {
		return err
	}

	if len(subs) != len(subCategoryIDs) {
		v.logger.Debug("subcategory lookup short",
			"requested", len(subCategoryIDs),
			"found", len(subs),
		)
		return errs.ErrSubCategoryNotFound
	}

	var offending []id.ID
	for _, sc := range subs {
		if !id.Contains(categoryIDs, sc.CategoryID) {
			offending = append(offending, sc.ID)
		}
	}
	if len(offending) > 0 {
		return &MismatchError{SubCategoryIDs: offending}
	}

	return nil
}

// MismatchError lists every subcategory whose category is not among the
// selected categories. It unwraps to syllabus.ErrSubCategoryCategoryMismatch.
type MismatchError struct {
	SubCategoryIDs []id.ID
}

func (e *MismatchError) Error() string {
	return errs.ErrSubCategoryCategoryMismatch.Error() + ": " + strings.Join(id.Strings(e.SubCategoryIDs), ", ")
}

func (e *MismatchError) Unwrap() error { return errs.ErrSubCategoryCategoryMismatch }
