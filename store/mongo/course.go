package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xraph/syllabus"
	"github.com/xraph/syllabus/course"
	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/query"
)

// CreateCourse persists a new course.
func (s *Store) CreateCourse(ctx context.Context, c *course.Course) error {
	m := toCourseModel(c)

	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: course %q", syllabus.ErrDuplicateName, c.Name)
		}
		return fmt.Errorf("syllabus/mongo: create course: %w", err)
	}

	return nil
}

// GetCourse returns an active course by ID.
func (s *Store) GetCourse(ctx context.Context, courseID id.ID) (*course.Course, error) {
	var m courseModel

	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": courseID.String(), "is_deleted": false}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, syllabus.ErrCourseNotFound
		}

		return nil, fmt.Errorf("syllabus/mongo: get course: %w", err)
	}

	return fromCourseModel(&m)
}

// UpdateCourse replaces a stored course.
func (s *Store) UpdateCourse(ctx context.Context, c *course.Course) error {
	m := toCourseModel(c)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: course %q", syllabus.ErrDuplicateName, c.Name)
		}
		return fmt.Errorf("syllabus/mongo: update course: %w", err)
	}

	if res.MatchedCount() == 0 {
		return syllabus.ErrCourseNotFound
	}

	c.UpdatedAt = m.UpdatedAt
	return nil
}

// ListCourses returns one page of active courses matching q.
func (s *Store) ListCourses(ctx context.Context, q query.Query) ([]*course.Course, int64, error) {
	filter := activeFilter(q)

	total, err := s.mdb.NewFind((*courseModel)(nil)).
		Filter(filter).
		Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("syllabus/mongo: count courses: %w", err)
	}

	var models []courseModel

	err = s.mdb.NewFind(&models).
		Filter(filter).
		Sort(sortFor(q)).
		Skip(int64(q.Offset())).
		Limit(int64(q.Limit)).
		Scan(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("syllabus/mongo: list courses: %w", err)
	}

	result, err := convertAll(models, fromCourseModel)
	if err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

// CourseNameTaken reports whether an active course other than exclude is
// named name.
func (s *Store) CourseNameTaken(ctx context.Context, name string, exclude id.ID) (bool, error) {
	count, err := s.mdb.NewFind((*courseModel)(nil)).
		Filter(nameFilter(name, exclude)).
		Count(ctx)
	if err != nil {
		return false, fmt.Errorf("syllabus/mongo: course name taken: %w", err)
	}

	return count > 0, nil
}

// FindCoursesByCategory returns the active courses referencing a category.
func (s *Store) FindCoursesByCategory(ctx context.Context, catID id.ID) ([]*course.Course, error) {
	return s.findCourses(ctx, bson.M{"category_ids": catID.String(), "is_deleted": false})
}

// FindCoursesBySubCategory returns the active courses referencing a
// subcategory.
func (s *Store) FindCoursesBySubCategory(ctx context.Context, scID id.ID) ([]*course.Course, error) {
	return s.findCourses(ctx, bson.M{"subcategory_ids": scID.String(), "is_deleted": false})
}

func (s *Store) findCourses(ctx context.Context, filter bson.M) ([]*course.Course, error) {
	var models []courseModel

	if err := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(creationOrder).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("syllabus/mongo: find courses: %w", err)
	}

	return convertAll(models, fromCourseModel)
}
