// Package subcategory manages the middle tier of the catalog hierarchy.
// Every subcategory belongs to exactly one category; names are not unique.
package subcategory

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/xraph/syllabus/category"
	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/internal/entity"
	"github.com/xraph/syllabus/validate"
)

// SubCategory is a named grouping inside a category.
type SubCategory struct {
	entity.Entity
	entity.Lifecycle

	// ID is the unique TypeID for this subcategory.
	ID id.ID `json:"id"`

	Name        string `json:"name"`
	Description string `json:"description"`

	// CategoryID is the parent category. It referenced an active category
	// when last written.
	CategoryID id.ID `json:"categoryId"`
}

// Ref is the short form of a subcategory embedded in course views.
type Ref struct {
	ID         id.ID  `json:"id"`
	Name       string `json:"name"`
	CategoryID id.ID  `json:"categoryId"`
}

// Ref returns the short form of sc.
func (sc *SubCategory) Ref() Ref {
	return Ref{ID: sc.ID, Name: sc.Name, CategoryID: sc.CategoryID}
}

// Detail is a subcategory with its parent category resolved. Category is
// nil when the parent is no longer active.
type Detail struct {
	*SubCategory
	Category *category.Ref `json:"category,omitempty"`
}

// CreateInput holds the fields for a new subcategory.
type CreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CategoryID  id.ID  `json:"categoryId"`
}

// Validate trims and checks the input.
func (in *CreateInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	return validate.Struct(in,
		validation.Field(&in.Name, validate.Name...),
		validation.Field(&in.Description, validate.Description...),
		validation.Field(&in.CategoryID, validate.Ref(id.PrefixCategory)...),
	)
}

// UpdateInput holds a partial subcategory update. Nil fields are left as is.
type UpdateInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	CategoryID  *id.ID  `json:"categoryId,omitempty"`
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
		validation.Field(&in.CategoryID, validate.OptionalRef(id.PrefixCategory)...),
	)
}
