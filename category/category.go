// Package category manages the top tier of the catalog hierarchy.
package category

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/internal/entity"
	"github.com/xraph/syllabus/validate"
)

// Category is the top-level grouping of the catalog. Its name is unique
// among active categories.
type Category struct {
	entity.Entity
	entity.Lifecycle

	// ID is the unique TypeID for this category.
	ID id.ID `json:"id"`

	Name        string `json:"name"`
	Description string `json:"description"`
}

// Ref is the short form of a category embedded in other records' views.
type Ref struct {
	ID   id.ID  `json:"id"`
	Name string `json:"name"`
}

// Ref returns the short form of c.
func (c *Category) Ref() Ref {
	return Ref{ID: c.ID, Name: c.Name}
}

// CreateInput holds the fields for a new category.
type CreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Validate trims and checks the input.
func (in *CreateInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	return validate.Struct(in,
		validation.Field(&in.Name, validate.Name...),
		validation.Field(&in.Description, validate.Description...),
	)
}

// UpdateInput holds a partial category update. Nil fields are left as is.
type UpdateInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
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
	)
}
