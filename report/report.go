// Package report serves the read-only reporting views over the catalog.
//
// Every view is a named Store method so each backend can compute it natively:
// Mongo runs an aggregation pipeline, the SQL backends run GROUP BY queries,
// and the memory backend loops over its maps.
package report

import (
	"time"

	"github.com/xraph/syllabus/id"
)

// View names, used for logging, metrics and cache keys.
const (
	ViewCategoriesWithSubCategoryCount = "categories_with_subcategory_count"
	ViewSubCategoriesByCategory        = "subcategories_by_category"
	ViewCoursesByLevel                 = "courses_by_level"
	ViewStatistics                     = "statistics"
	ViewCoursesWithDetails             = "courses_with_details"
)

// CategorySubCategoryCount is an active category with the number of its
// active subcategories.
type CategorySubCategoryCount struct {
	ID               id.ID     `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	SubCategoryCount int64     `json:"subCategoryCount"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// SubCategorySummary is a subcategory inside a CategoryGroup.
type SubCategorySummary struct {
	ID          id.ID  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryGroup is the set of active subcategories under one category.
type CategoryGroup struct {
	CategoryID         id.ID                `json:"categoryId"`
	CategoryName       string               `json:"categoryName"`
	SubCategories      []SubCategorySummary `json:"subCategories"`
	TotalSubCategories int64                `json:"totalSubCategories"`
}

// CourseSummary is a course inside a LevelGroup.
type CourseSummary struct {
	ID          id.ID   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
}

// LevelGroup is the set of active courses at one difficulty level.
type LevelGroup struct {
	Level           string          `json:"level"`
	Courses         []CourseSummary `json:"courses"`
	TotalCourses    int64           `json:"totalCourses"`
	AverageDuration float64         `json:"averageDuration"`
}

// Statistics summarizes the active catalog. Duration figures are zero when
// there are no active courses.
type Statistics struct {
	TotalCategories int64   `json:"totalCategories"`
	TotalCourses    int64   `json:"totalCourses"`
	AverageDuration float64 `json:"averageDuration"`
	MinDuration     float64 `json:"minDuration"`
	MaxDuration     float64 `json:"maxDuration"`
}

// CourseDetail is an active course with the number of its references that
// resolve to stored records, deleted or not.
type CourseDetail struct {
	ID               id.ID     `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Duration         float64   `json:"duration"`
	Level            string    `json:"level"`
	CategoryIDs      []id.ID   `json:"categoryIds"`
	SubCategoryIDs   []id.ID   `json:"subCategoryIds"`
	CategoryCount    int64     `json:"categoryCount"`
	SubCategoryCount int64     `json:"subCategoryCount"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
