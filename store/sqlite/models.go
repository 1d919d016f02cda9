package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/syllabus/category"
	"github.com/xraph/syllabus/course"
	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/internal/entity"
	"github.com/xraph/syllabus/subcategory"
)

// --- Category models ---

type categoryModel struct {
	grove.BaseModel `grove:"table:syllabus_categories"`

	ID          string     `grove:"id,pk"`
	Name        string     `grove:"name"`
	Description string     `grove:"description"`
	IsDeleted   bool       `grove:"is_deleted"`
	DeletedAt   *time.Time `grove:"deleted_at"`
	CreatedAt   time.Time  `grove:"created_at"`
	UpdatedAt   time.Time  `grove:"updated_at"`
}

func toCategoryModel(c *category.Category) *categoryModel {
	return &categoryModel{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		IsDeleted:   c.IsDeleted(),
		DeletedAt:   c.DeletedAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func fromCategoryModel(m *categoryModel) (*category.Category, error) {
	catID, err := id.ParseCategoryID(m.ID)
	if err != nil {
		return nil, fmt.Errorf("parse category id %q: %w", m.ID, err)
	}
	return &category.Category{
		Entity:      entity.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		Lifecycle:   entity.FromFlag(m.IsDeleted, m.DeletedAt),
		ID:          catID,
		Name:        m.Name,
		Description: m.Description,
	}, nil
}

// --- Subcategory models ---

type subCategoryModel struct {
	grove.BaseModel `grove:"table:syllabus_subcategories"`

	ID          string     `grove:"id,pk"`
	Name        string     `grove:"name"`
	Description string     `grove:"description"`
	CategoryID  string     `grove:"category_id"`
	IsDeleted   bool       `grove:"is_deleted"`
	DeletedAt   *time.Time `grove:"deleted_at"`
	CreatedAt   time.Time  `grove:"created_at"`
	UpdatedAt   time.Time  `grove:"updated_at"`
}

func toSubCategoryModel(sc *subcategory.SubCategory) *subCategoryModel {
	return &subCategoryModel{
		ID:          sc.ID.String(),
		Name:        sc.Name,
		Description: sc.Description,
		CategoryID:  sc.CategoryID.String(),
		IsDeleted:   sc.IsDeleted(),
		DeletedAt:   sc.DeletedAt,
		CreatedAt:   sc.CreatedAt,
		UpdatedAt:   sc.UpdatedAt,
	}
}

func fromSubCategoryModel(m *subCategoryModel) (*subcategory.SubCategory, error) {
	scID, err := id.ParseSubCategoryID(m.ID)
	if err != nil {
		return nil, fmt.Errorf("parse subcategory id %q: %w", m.ID, err)
	}
	catID, err := id.ParseCategoryID(m.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("parse category id %q: %w", m.CategoryID, err)
	}
	return &subcategory.SubCategory{
		Entity:      entity.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		Lifecycle:   entity.FromFlag(m.IsDeleted, m.DeletedAt),
		ID:          scID,
		Name:        m.Name,
		Description: m.Description,
		CategoryID:  catID,
	}, nil
}

// --- Course models ---

type courseModel struct {
	grove.BaseModel `grove:"table:syllabus_courses"`

	ID             string     `grove:"id,pk"`
	Name           string     `grove:"name"`
	Description    string     `grove:"description"`
	Duration       float64    `grove:"duration"`
	Level          string     `grove:"level"`
	CategoryIDs    string     `grove:"category_ids"`    // JSON array
	SubCategoryIDs string     `grove:"subcategory_ids"` // JSON array
	IsDeleted      bool       `grove:"is_deleted"`
	DeletedAt      *time.Time `grove:"deleted_at"`
	CreatedAt      time.Time  `grove:"created_at"`
	UpdatedAt      time.Time  `grove:"updated_at"`
}

func toCourseModel(c *course.Course) *courseModel {
	catIDs, _ := json.Marshal(id.Strings(c.CategoryIDs))    //nolint:errcheck // strings always marshal
	subIDs, _ := json.Marshal(id.Strings(c.SubCategoryIDs)) //nolint:errcheck // strings always marshal

	return &courseModel{
		ID:             c.ID.String(),
		Name:           c.Name,
		Description:    c.Description,
		Duration:       c.Duration,
		Level:          string(c.Level),
		CategoryIDs:    string(catIDs),
		SubCategoryIDs: string(subIDs),
		IsDeleted:      c.IsDeleted(),
		DeletedAt:      c.DeletedAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func fromCourseModel(m *courseModel) (*course.Course, error) {
	courseID, err := id.ParseCourseID(m.ID)
	if err != nil {
		return nil, fmt.Errorf("parse course id %q: %w", m.ID, err)
	}
	catIDs, err := parseIDArray(m.CategoryIDs, id.PrefixCategory)
	if err != nil {
		return nil, fmt.Errorf("parse course %s category ids: %w", m.ID, err)
	}
	subIDs, err := parseIDArray(m.SubCategoryIDs, id.PrefixSubCategory)
	if err != nil {
		return nil, fmt.Errorf("parse course %s subcategory ids: %w", m.ID, err)
	}
	return &course.Course{
		Entity:         entity.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		Lifecycle:      entity.FromFlag(m.IsDeleted, m.DeletedAt),
		ID:             courseID,
		Name:           m.Name,
		Description:    m.Description,
		Duration:       m.Duration,
		Level:          course.Level(m.Level),
		CategoryIDs:    catIDs,
		SubCategoryIDs: subIDs,
	}, nil
}

// --- Report rows ---

type categoryCountRow struct {
	ID               string    `grove:"id"`
	Name             string    `grove:"name"`
	Description      string    `grove:"description"`
	SubCategoryCount int64     `grove:"subcategory_count"`
	CreatedAt        time.Time `grove:"created_at"`
	UpdatedAt        time.Time `grove:"updated_at"`
}

type subCategoryRow struct {
	CategoryID   string `grove:"category_id"`
	CategoryName string `grove:"category_name"`
	ID           string `grove:"id"`
	Name         string `grove:"name"`
	Description  string `grove:"description"`
}

type statisticsRow struct {
	TotalCategories int64   `grove:"total_categories"`
	TotalCourses    int64   `grove:"total_courses"`
	AverageDuration float64 `grove:"average_duration"`
	MinDuration     float64 `grove:"min_duration"`
	MaxDuration     float64 `grove:"max_duration"`
}

type courseDetailRow struct {
	ID               string    `grove:"id"`
	Name             string    `grove:"name"`
	Description      string    `grove:"description"`
	Duration         float64   `grove:"duration"`
	Level            string    `grove:"level"`
	CategoryIDs      string    `grove:"category_ids"`
	SubCategoryIDs   string    `grove:"subcategory_ids"`
	CategoryCount    int64     `grove:"category_count"`
	SubCategoryCount int64     `grove:"subcategory_count"`
	CreatedAt        time.Time `grove:"created_at"`
	UpdatedAt        time.Time `grove:"updated_at"`
}

func (r *courseDetailRow) model() *courseModel {
	return &courseModel{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		Duration:       r.Duration,
		Level:          r.Level,
		CategoryIDs:    r.CategoryIDs,
		SubCategoryIDs: r.SubCategoryIDs,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func convertAll[M, T any](models []M, from func(*M) (T, error)) ([]T, error) {
	out := make([]T, 0, len(models))
	for i := range models {
		v, err := from(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// parseIDArray decodes a JSON array column into ids of the given kind.
func parseIDArray(raw string, prefix id.Prefix) ([]id.ID, error) {
	var values []string
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &values); err != nil {
			return nil, err
		}
	}
	return id.ParseMany(values, prefix)
}
