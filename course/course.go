// Package course manages the leaf tier of the catalog hierarchy.
//
// A course references one or more categories and one or more subcategories,
// and every referenced subcategory must belong to one of the referenced
// categories.
package course

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/xraph/syllabus/category"
	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/internal/entity"
	"github.com/xraph/syllabus/subcategory"
	"github.com/xraph/syllabus/validate"
)

// Level is the difficulty of a course.
type Level string

// Course levels.
const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels lists every valid level.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

func levelRule() validation.Rule {
	in := make([]any, len(Levels))
	for i, l := range Levels {
		in[i] = l
	}
	return validation.In(in...).Error("must be one of beginner, intermediate, advanced")
}

// Course is a unit of learning content. Its name is unique among active
// courses.
type Course struct {
	entity.Entity
	entity.Lifecycle

	// ID is the unique TypeID for this course.
	ID id.ID `json:"id"`

	Name        string `json:"name"`
	Description string `json:"description"`

	// Duration is the course length in hours. Always positive.
	Duration float64 `json:"duration"`

	Level Level `json:"level"`

	CategoryIDs    []id.ID `json:"categoryIds"`
	SubCategoryIDs []id.ID `json:"subCategoryIds"`
}

// Detail is a course with its references resolved to active records.
// References to records that have since been soft-deleted are omitted.
type Detail struct {
	*Course
	Categories    []category.Ref    `json:"categories"`
	SubCategories []subcategory.Ref `json:"subCategories"`
}

// CreateInput holds the fields for a new course.
type CreateInput struct {
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	Duration       float64 `json:"duration"`
	Level          Level   `json:"level"`
	CategoryIDs    []id.ID `json:"categoryIds"`
	SubCategoryIDs []id.ID `json:"subCategoryIds"`
}

// Validate trims and checks the input.
func (in *CreateInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	return validate.Struct(in,
		validation.Field(&in.Name, validate.Name...),
		validation.Field(&in.Description, validate.Description...),
		validation.Field(&in.Duration, validate.Duration...),
		validation.Field(&in.Level, validation.Required, levelRule()),
		validation.Field(&in.CategoryIDs, validate.Refs(id.PrefixCategory)...),
		validation.Field(&in.SubCategoryIDs, validate.Refs(id.PrefixSubCategory)...),
	)
}

// UpdateInput holds a partial course update. Nil fields are left as is.
type UpdateInput struct {
	Name           *string  `json:"name,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Duration       *float64 `json:"duration,omitempty"`
	Level          *Level   `json:"level,omitempty"`
	CategoryIDs    []id.ID  `json:"categoryIds,omitempty"`
	SubCategoryIDs []id.ID  `json:"subCategoryIds,omitempty"`
}

// Validate trims and checks the input.
func (in *UpdateInput) Validate() error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	return validate.Struct(in,
		validation.Field(&in.Name, validate.OptionalName...),
		validation.Field(&in.Description, validate.Description...),
		validation.Field(&in.Duration, validate.OptionalDuration...),
		validation.Field(&in.Level, validation.NilOrNotEmpty, levelRule()),
		validation.Field(&in.CategoryIDs, validate.OptionalRefs(id.PrefixCategory)...),
		validation.Field(&in.SubCategoryIDs, validate.OptionalRefs(id.PrefixSubCategory)...),
	)
}
