package course

import (
	"context"

	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/query"
)

// Store defines the persistence contract for courses.
type Store interface {
	// CreateCourse persists a new course.
	CreateCourse(ctx context.Context, c *Course) error

	// GetCourse returns an active course by ID. Missing and soft-deleted
	// courses yield syllabus.ErrCourseNotFound.
	GetCourse(ctx context.Context, courseID id.ID) (*Course, error)

	// UpdateCourse replaces a stored course, including its lifecycle.
	UpdateCourse(ctx context.Context, c *Course) error

	// ListCourses returns one page of active courses matching q and the
	// total number of matches.
	ListCourses(ctx context.Context, q query.Query) ([]*Course, int64, error)

	// CourseNameTaken reports whether an active course other than exclude is
	// named name. Pass id.Nil to exclude nothing.
	CourseNameTaken(ctx context.Context, name string, exclude id.ID) (bool, error)

	// FindCoursesByCategory returns the active courses referencing a
	// category, in creation order.
	FindCoursesByCategory(ctx context.Context, catID id.ID) ([]*Course, error)

	// FindCoursesBySubCategory returns the active courses referencing a
	// subcategory, in creation order.
	FindCoursesBySubCategory(ctx context.Context, scID id.ID) ([]*Course, error)
}
