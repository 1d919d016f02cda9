package subcategory

import (
	"context"

	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/query"
)

// Store defines the persistence contract for subcategories.
type Store interface {
	// CreateSubCategory persists a new subcategory.
	CreateSubCategory(ctx context.Context, sc *SubCategory) error

	// GetSubCategory returns an active subcategory by ID. Missing and
	// soft-deleted subcategories yield syllabus.ErrSubCategoryNotFound.
	GetSubCategory(ctx context.Context, scID id.ID) (*SubCategory, error)

	// UpdateSubCategory replaces a stored subcategory, including its lifecycle.
	UpdateSubCategory(ctx context.Context, sc *SubCategory) error

	// ListSubCategories returns one page of active subcategories matching q
	// and the total number of matches.
	ListSubCategories(ctx context.Context, q query.Query) ([]*SubCategory, int64, error)

	// FindSubCategoriesByIDs returns the active subcategories among ids.
	FindSubCategoriesByIDs(ctx context.Context, ids []id.ID) ([]*SubCategory, error)

	// FindSubCategoriesByCategory returns the active subcategories of a
	// category in creation order.
	FindSubCategoriesByCategory(ctx context.Context, catID id.ID) ([]*SubCategory, error)
}
