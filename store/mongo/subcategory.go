package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/xraph/syllabus"
	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/query"
	"github.com/xraph/syllabus/subcategory"
)

// CreateSubCategory persists a new subcategory.
func (s *Store) CreateSubCategory(ctx context.Context, sc *subcategory.SubCategory) error {
	m := toSubCategoryModel(sc)

	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("syllabus/mongo: create subcategory: %w", err)
	}

	return nil
}

// GetSubCategory returns an active subcategory by ID.
func (s *Store) GetSubCategory(ctx context.Context, scID id.ID) (*subcategory.SubCategory, error) {
	var m subCategoryModel

	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": scID.String(), "is_deleted": false}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, syllabus.ErrSubCategoryNotFound
		}

		return nil, fmt.Errorf("syllabus/mongo: get subcategory: %w", err)
	}

	return fromSubCategoryModel(&m)
}

// UpdateSubCategory replaces a stored subcategory.
func (s *Store) UpdateSubCategory(ctx context.Context, sc *subcategory.SubCategory) error {
	m := toSubCategoryModel(sc)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("syllabus/mongo: update subcategory: %w", err)
	}

	if res.MatchedCount() == 0 {
		return syllabus.ErrSubCategoryNotFound
	}

	sc.UpdatedAt = m.UpdatedAt
	return nil
}

// ListSubCategories returns one page of active subcategories matching q.
func (s *Store) ListSubCategories(ctx context.Context, q query.Query) ([]*subcategory.SubCategory, int64, error) {
	filter := activeFilter(q)

	total, err := s.mdb.NewFind((*subCategoryModel)(nil)).
		Filter(filter).
		Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("syllabus/mongo: count subcategories: %w", err)
	}

	var models []subCategoryModel

	err = s.mdb.NewFind(&models).
		Filter(filter).
		Sort(sortFor(q)).
		Skip(int64(q.Offset())).
		Limit(int64(q.Limit)).
		Scan(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("syllabus/mongo: list subcategories: %w", err)
	}

	result, err := convertAll(models, fromSubCategoryModel)
	if err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

// FindSubCategoriesByIDs returns the active subcategories among ids, in the
// order of ids.
func (s *Store) FindSubCategoriesByIDs(ctx context.Context, ids []id.ID) ([]*subcategory.SubCategory, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []subCategoryModel

	if err := s.mdb.NewFind(&models).
		Filter(idsFilter(ids)).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("syllabus/mongo: find subcategories: %w", err)
	}

	found := make(map[string]*subcategory.SubCategory, len(models))
	for i := range models {
		sc, err := fromSubCategoryModel(&models[i])
		if err != nil {
			return nil, err
		}
		found[models[i].ID] = sc
	}

	return inOrder(ids, found), nil
}

// FindSubCategoriesByCategory returns the active subcategories of a category.
func (s *Store) FindSubCategoriesByCategory(ctx context.Context, catID id.ID) ([]*subcategory.SubCategory, error) {
	var models []subCategoryModel

	if err := s.mdb.NewFind(&models).
		Filter(bson.M{"category_id": catID.String(), "is_deleted": false}).
		Sort(creationOrder).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("syllabus/mongo: find subcategories by category: %w", err)
	}

	return convertAll(models, fromSubCategoryModel)
}
