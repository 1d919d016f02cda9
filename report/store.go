package report

import "context"

// Store defines the persistence contract for reporting views.
type Store interface {
	// CategoriesWithSubCategoryCount returns active categories, newest first,
	// each with its count of active subcategories.
	CategoriesWithSubCategoryCount(ctx context.Context) ([]CategorySubCategoryCount, error)

	// SubCategoriesByCategory groups active subcategories by parent category,
	// ordered by category name. Subcategories whose parent no longer exists
	// are dropped; a soft-deleted parent still forms a group.
	SubCategoriesByCategory(ctx context.Context) ([]CategoryGroup, error)

	// CoursesByLevel groups active courses by level, largest group first.
	CoursesByLevel(ctx context.Context) ([]LevelGroup, error)

	// Statistics summarizes active categories and courses.
	Statistics(ctx context.Context) (*Statistics, error)

	// CoursesWithDetails lists active courses with their reference counts.
	CoursesWithDetails(ctx context.Context) ([]CourseDetail, error)
}
