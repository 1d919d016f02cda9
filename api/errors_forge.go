package api

import (
	"errors"
	"fmt"

	"github.com/xraph/forge"

	"github.com/xraph/syllabus"
	"github.com/xraph/syllabus/consistency"
	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/validate"
)

// mapError converts syllabus sentinel errors to Forge HTTP errors.
func mapError(err error) error {
	var ve *validate.Error
	var mm *consistency.MismatchError

	switch {
	case errors.As(err, &ve):
		return forge.BadRequest(err.Error())
	case errors.As(err, &mm):
		return forge.BadRequest(fmt.Sprintf("%s: %v", syllabus.ErrSubCategoryCategoryMismatch, id.Strings(mm.SubCategoryIDs)))
	case errors.Is(err, syllabus.ErrValidation):
		return forge.BadRequest(err.Error())
	case errors.Is(err, syllabus.ErrDuplicateName):
		return forge.BadRequest(err.Error())
	case errors.Is(err, syllabus.ErrCategoryNotFound):
		return forge.NotFound(err.Error())
	case errors.Is(err, syllabus.ErrSubCategoryNotFound):
		return forge.NotFound(err.Error())
	case errors.Is(err, syllabus.ErrCourseNotFound):
		return forge.NotFound(err.Error())
	case errors.Is(err, syllabus.ErrNoStore):
		return forge.InternalError(err)
	case errors.Is(err, syllabus.ErrStoreClosed):
		return forge.InternalError(err)
	default:
		return forge.InternalError(err)
	}
}
