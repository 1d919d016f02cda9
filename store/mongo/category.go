package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xraph/syllabus"
	"github.com/xraph/syllabus/category"
	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/query"
)

// CreateCategory persists a new category.
func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	m := toCategoryModel(c)

	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: category %q", syllabus.ErrDuplicateName, c.Name)
		}
		return fmt.Errorf("syllabus/mongo: create category: %w", err)
	}

	return nil
}

// GetCategory returns an active category by ID.
func (s *Store) GetCategory(ctx context.Context, catID id.ID) (*category.Category, error) {
	var m categoryModel

	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": catID.String(), "is_deleted": false}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, syllabus.ErrCategoryNotFound
		}

		return nil, fmt.Errorf("syllabus/mongo: get category: %w", err)
	}

	return fromCategoryModel(&m)
}

// UpdateCategory replaces a stored category.
func (s *Store) UpdateCategory(ctx context.Context, c *category.Category) error {
	m := toCategoryModel(c)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: category %q", syllabus.ErrDuplicateName, c.Name)
		}
		return fmt.Errorf("syllabus/mongo: update category: %w", err)
	}

	if res.MatchedCount() == 0 {
		return syllabus.ErrCategoryNotFound
	}

	c.UpdatedAt = m.UpdatedAt
	return nil
}

// ListCategories returns one page of active categories matching q.
func (s *Store) ListCategories(ctx context.Context, q query.Query) ([]*category.Category, int64, error) {
	filter := activeFilter(q)

	total, err := s.mdb.NewFind((*categoryModel)(nil)).
		Filter(filter).
		Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("syllabus/mongo: count categories: %w", err)
	}

	var models []categoryModel

	err = s.mdb.NewFind(&models).
		Filter(filter).
		Sort(sortFor(q)).
		Skip(int64(q.Offset())).
		Limit(int64(q.Limit)).
		Scan(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("syllabus/mongo: list categories: %w", err)
	}

	result, err := convertAll(models, fromCategoryModel)
	if err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

// CategoryNameTaken reports whether an active category other than exclude
// is named name.
func (s *Store) CategoryNameTaken(ctx context.Context, name string, exclude id.ID) (bool, error) {
	count, err := s.mdb.NewFind((*categoryModel)(nil)).
		Filter(nameFilter(name, exclude)).
		Count(ctx)
	if err != nil {
		return false, fmt.Errorf("syllabus/mongo: category name taken: %w", err)
	}

	return count > 0, nil
}

// FindCategoriesByIDs returns the active categories among ids, in the order
// of ids.
func (s *Store) FindCategoriesByIDs(ctx context.Context, ids []id.ID) ([]*category.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []categoryModel

	if err := s.mdb.NewFind(&models).
		Filter(idsFilter(ids)).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("syllabus/mongo: find categories: %w", err)
	}

	found := make(map[string]*category.Category, len(models))
	for i := range models {
		c, err := fromCategoryModel(&models[i])
		if err != nil {
			return nil, err
		}
		found[models[i].ID] = c
	}

	return inOrder(ids, found), nil
}
