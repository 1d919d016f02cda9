package category

import (
	"context"

	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/query"
)

// Store defines the persistence contract for categories.
type Store interface {
	// CreateCategory persists a new category.
	CreateCategory(ctx context.Context, c *Category) error

	// GetCategory returns an active category by ID. Missing and soft-deleted
	// categories yield syllabus.ErrCategoryNotFound.
	GetCategory(ctx context.Context, catID id.ID) (*Category, error)

	// UpdateCategory replaces a stored category, including its lifecycle.
	UpdateCategory(ctx context.Context, c *Category) error

	// ListCategories returns one page of active categories matching q and
	// the total number of matches.
	ListCategories(ctx context.Context, q query.Query) ([]*Category, int64, error)

	// CategoryNameTaken reports whether an active category other than
	// exclude is named name. Pass id.Nil to exclude nothing.
	CategoryNameTaken(ctx context.Context, name string, exclude id.ID) (bool, error)

	// FindCategoriesByIDs returns the active categories among ids.
	FindCategoriesByIDs(ctx context.Context, ids []id.ID) ([]*Category, error)
}
