package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/report"
)

// ──────────────────────────────────────────────────
// report.Store
// ──────────────────────────────────────────────────

// Aggregation result rows. IDs come back as strings and are parsed on the
// way out.

type categoryCountRow struct {
	ID               string    `bson:"_id"`
	Name             string    `bson:"name"`
	Description      string    `bson:"description"`
	SubCategoryCount int64     `bson:"subcategory_count"`
	CreatedAt        time.Time `bson:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

type summaryRow struct {
	ID          string  `bson:"id"`
	Name        string  `bson:"name"`
	Description string  `bson:"description"`
	Duration    float64 `bson:"duration"`
}

type categoryGroupRow struct {
	CategoryID    string       `bson:"_id"`
	CategoryName  string       `bson:"category_name"`
	SubCategories []summaryRow `bson:"subcategories"`
	Total         int64        `bson:"total"`
}

type levelGroupRow struct {
	Level           string       `bson:"_id"`
	Courses         []summaryRow `bson:"courses"`
	Total           int64        `bson:"total"`
	AverageDuration float64      `bson:"average_duration"`
}

type statisticsRow struct {
	Total           int64   `bson:"total"`
	AverageDuration float64 `bson:"average_duration"`
	MinDuration     float64 `bson:"min_duration"`
	MaxDuration     float64 `bson:"max_duration"`
}

type courseDetailRow struct {
	ID               string    `bson:"_id"`
	Name             string    `bson:"name"`
	Description      string    `bson:"description"`
	Duration         float64   `bson:"duration"`
	Level            string    `bson:"level"`
	CategoryIDs      []string  `bson:"category_ids"`
	SubCategoryIDs   []string  `bson:"subcategory_ids"`
	CategoryCount    int64     `bson:"category_count"`
	SubCategoryCount int64     `bson:"subcategory_count"`
	CreatedAt        time.Time `bson:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

var matchActive = bson.D{{Key: "$match", Value: bson.M{"is_deleted": false}}}

var sortCreated = bson.D{{Key: "$sort", Value: creationOrder}}

// CategoriesWithSubCategoryCount returns active categories, newest first,
// each with its count of active subcategories.
func (s *Store) CategoriesWithSubCategoryCount(ctx context.Context) ([]report.CategorySubCategoryCount, error) {
	pipeline := mongo.Pipeline{
		matchActive,
		{{Key: "$lookup", Value: bson.M{
			"from":         colSubCategories,
			"localField":   "_id",
			"foreignField": "category_id",
			"as":           "subcategories",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"subcategory_count": bson.M{"$size": bson.M{"$filter": bson.M{
				"input": "$subcategories",
				"cond":  bson.M{"$eq": bson.A{"$$this.is_deleted", false}},
			}}},
		}}},
		{{Key: "$project", Value: bson.M{"subcategories": 0}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	var rows []categoryCountRow
	if err := s.aggregate(ctx, colCategories, pipeline, &rows); err != nil {
		return nil, fmt.Errorf("syllabus/mongo: categories with subcategory count: %w", err)
	}

	out := make([]report.CategorySubCategoryCount, 0, len(rows))
	for _, r := range rows {
		catID, err := id.ParseCategoryID(r.ID)
		if err != nil {
			return nil, fmt.Errorf("syllabus/mongo: parse category id %q: %w", r.ID, err)
		}
		out = append(out, report.CategorySubCategoryCount{
			ID:               catID,
			Name:             r.Name,
			Description:      r.Description,
			SubCategoryCount: r.SubCategoryCount,
			CreatedAt:        r.CreatedAt,
			UpdatedAt:        r.UpdatedAt,
		})
	}
	return out, nil
}

// SubCategoriesByCategory groups active subcategories by parent category.
// The $unwind drops subcategories whose parent document is gone.
func (s *Store) SubCategoriesByCategory(ctx context.Context) ([]report.CategoryGroup, error) {
	pipeline := mongo.Pipeline{
		matchActive,
		sortCreated,
		{{Key: "$lookup", Value: bson.M{
			"from":         colCategories,
			"localField":   "category_id",
			"foreignField": "_id",
			"as":           "category",
		}}},
		{{Key: "$unwind", Value: "$category"}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$category._id",
			"category_name": bson.M{"$first": "$category.name"},
			"subcategories": bson.M{"$push": bson.M{
				"id":          "$_id",
				"name":        "$name",
				"description": "$description",
			}},
			"total": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "category_name", Value: 1}, {Key: "_id", Value: 1}}}},
	}

	var rows []categoryGroupRow
	if err := s.aggregate(ctx, colSubCategories, pipeline, &rows); err != nil {
		return nil, fmt.Errorf("syllabus/mongo: subcategories by category: %w", err)
	}

	out := make([]report.CategoryGroup, 0, len(rows))
	for _, r := range rows {
		catID, err := id.ParseCategoryID(r.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("syllabus/mongo: parse category id %q: %w", r.CategoryID, err)
		}
		g := report.CategoryGroup{
			CategoryID:         catID,
			CategoryName:       r.CategoryName,
			TotalSubCategories: r.Total,
		}
		for _, sr := range r.SubCategories {
			scID, err := id.ParseSubCategoryID(sr.ID)
			if err != nil {
				return nil, fmt.Errorf("syllabus/mongo: parse subcategory id %q: %w", sr.ID, err)
			}
			g.SubCategories = append(g.SubCategories, report.SubCategorySummary{
				ID:          scID,
				Name:        sr.Name,
				Description: sr.Description,
			})
		}
		out = append(out, g)
	}
	return out, nil
}

// CoursesByLevel groups active courses by level, largest group first.
func (s *Store) CoursesByLevel(ctx context.Context) ([]report.LevelGroup, error) {
	pipeline := mongo.Pipeline{
		matchActive,
		sortCreated,
		{{Key: "$group", Value: bson.M{
			"_id": "$level",
			"courses": bson.M{"$push": bson.M{
				"id":          "$_id",
				"name":        "$name",
				"description": "$description",
				"duration":    "$duration",
			}},
			"total":            bson.M{"$sum": 1},
			"average_duration": bson.M{"$avg": "$duration"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	var rows []levelGroupRow
	if err := s.aggregate(ctx, colCourses, pipeline, &rows); err != nil {
		return nil, fmt.Errorf("syllabus/mongo: courses by level: %w", err)
	}

	out := make([]report.LevelGroup, 0, len(rows))
	for _, r := range rows {
		g := report.LevelGroup{
			Level:           r.Level,
			TotalCourses:    r.Total,
			AverageDuration: r.AverageDuration,
		}
		for _, cr := range r.Courses {
			courseID, err := id.ParseCourseID(cr.ID)
			if err != nil {
				return nil, fmt.Errorf("syllabus/mongo: parse course id %q: %w", cr.ID, err)
			}
			g.Courses = append(g.Courses, report.CourseSummary{
				ID:          courseID,
				Name:        cr.Name,
				Description: cr.Description,
				Duration:    cr.Duration,
			})
		}
		out = append(out, g)
	}
	return out, nil
}

// Statistics summarizes active categories and courses. With no active
// courses every duration aggregate is zero.
func (s *Store) Statistics(ctx context.Context) (*report.Statistics, error) {
	categories, err := s.mdb.NewFind((*categoryModel)(nil)).
		Filter(bson.M{"is_deleted": false}).
		Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("syllabus/mongo: count categories: %w", err)
	}

	pipeline := mongo.Pipeline{
		matchActive,
		{{Key: "$group", Value: bson.M{
			"_id":              nil,
			"total":            bson.M{"$sum": 1},
			"average_duration": bson.M{"$avg": "$duration"},
			"min_duration":     bson.M{"$min": "$duration"},
			"max_duration":     bson.M{"$max": "$duration"},
		}}},
	}

	var rows []statisticsRow
	if err := s.aggregate(ctx, colCourses, pipeline, &rows); err != nil {
		return nil, fmt.Errorf("syllabus/mongo: statistics: %w", err)
	}

	st := &report.Statistics{TotalCategories: categories}
	if len(rows) > 0 {
		st.TotalCourses = rows[0].Total
		st.AverageDuration = rows[0].AverageDuration
		st.MinDuration = rows[0].MinDuration
		st.MaxDuration = rows[0].MaxDuration
	}
	return st, nil
}

// CoursesWithDetails lists active courses with the number of their
// references that resolve to stored documents, deleted or not.
func (s *Store) CoursesWithDetails(ctx context.Context) ([]report.CourseDetail, error) {
	pipeline := mongo.Pipeline{
		matchActive,
		sortCreated,
		{{Key: "$lookup", Value: bson.M{
			"from":         colCategories,
			"localField":   "category_ids",
			"foreignField": "_id",
			"as":           "categories",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         colSubCategories,
			"localField":   "subcategory_ids",
			"foreignField": "_id",
			"as":           "subcategories",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"category_count":    bson.M{"$size": "$categories"},
			"subcategory_count": bson.M{"$size": "$subcategories"},
		}}},
		{{Key: "$project", Value: bson.M{"categories": 0, "subcategories": 0}}},
	}

	var rows []courseDetailRow
	if err := s.aggregate(ctx, colCourses, pipeline, &rows); err != nil {
		return nil, fmt.Errorf("syllabus/mongo: courses with details: %w", err)
	}

	out := make([]report.CourseDetail, 0, len(rows))
	for _, r := range rows {
		c, err := fromCourseModel(&courseModel{
			ID:             r.ID,
			Name:           r.Name,
			Description:    r.Description,
			Duration:       r.Duration,
			Level:          r.Level,
			CategoryIDs:    r.CategoryIDs,
			SubCategoryIDs: r.SubCategoryIDs,
			CreatedAt:      r.CreatedAt,
			UpdatedAt:      r.UpdatedAt,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, report.CourseDetail{
			ID:               c.ID,
			Name:             c.Name,
			Description:      c.Description,
			Duration:         c.Duration,
			Level:            string(c.Level),
			CategoryIDs:      c.CategoryIDs,
			SubCategoryIDs:   c.SubCategoryIDs,
			CategoryCount:    r.CategoryCount,
			SubCategoryCount: r.SubCategoryCount,
			CreatedAt:        c.CreatedAt,
			UpdatedAt:        c.UpdatedAt,
		})
	}
	return out, nil
}

// aggregate runs pipeline against col and decodes every result into out.
func (s *Store) aggregate(ctx context.Context, col string, pipeline mongo.Pipeline, out any) error {
	cur, err := s.mdb.Collection(col).Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	return cur.All(ctx, out)
}
