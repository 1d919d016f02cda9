package mongo

import (
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

	ID          string     `grove:"id,pk"        bson:"_id"`
	Name        string     `grove:"name"         bson:"name"`
	Description string     `grove:"description"  bson:"description"`
	IsDeleted   bool       `grove:"is_deleted"   bson:"is_deleted"`
	DeletedAt   *time.Time `grove:"deleted_at"   bson:"deleted_at,omitempty"`
	CreatedAt   time.Time  `grove:"created_at"   bson:"created_at"`
	UpdatedAt   time.Time  `grove:"updated_at"   bson:"updated_at"`
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
		Entity: entity.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Lifecycle:   entity.FromFlag(m.IsDeleted, m.DeletedAt),
		ID:          catID,
		Name:        m.Name,
		Description: m.Description,
	}, nil
}

// --- Subcategory models ---

type subCategoryModel struct {
	grove.BaseModel `grove:"table:syllabus_subcategories"`

	ID          string     `grove:"id,pk"        bson:"_id"`
	Name        string     `grove:"name"         bson:"name"`
	Description string     `grove:"description"  bson:"description"`
	CategoryID  string     `grove:"category_id"  bson:"category_id"`
	IsDeleted   bool       `grove:"is_deleted"   bson:"is_deleted"`
	DeletedAt   *time.Time `grove:"deleted_at"   bson:"deleted_at,omitempty"`
	CreatedAt   time.Time  `grove:"created_at"   bson:"created_at"`
	UpdatedAt   time.Time  `grove:"updated_at"   bson:"updated_at"`
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
		Entity: entity.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
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

	ID             string     `grove:"id,pk"            bson:"_id"`
	Name           string     `grove:"name"             bson:"name"`
	Description    string     `grove:"description"      bson:"description"`
	Duration       float64    `grove:"duration"         bson:"duration"`
	Level          string     `grove:"level"            bson:"level"`
	CategoryIDs    []string   `grove:"category_ids"     bson:"category_ids"`
	SubCategoryIDs []string   `grove:"subcategory_ids"  bson:"subcategory_ids"`
	IsDeleted      bool       `grove:"is_deleted"       bson:"is_deleted"`
	DeletedAt      *time.Time `grove:"deleted_at"       bson:"deleted_at,omitempty"`
	CreatedAt      time.Time  `grove:"created_at"       bson:"created_at"`
	UpdatedAt      time.Time  `grove:"updated_at"       bson:"updated_at"`
}

func toCourseModel(c *course.Course) *courseModel {
	return &courseModel{
		ID:             c.ID.String(),
		Name:           c.Name,
		Description:    c.Description,
		Duration:       c.Duration,
		Level:          string(c.Level),
		CategoryIDs:    id.Strings(c.CategoryIDs),
		SubCategoryIDs: id.Strings(c.SubCategoryIDs),
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

	catIDs, err := id.ParseMany(m.CategoryIDs, id.PrefixCategory)
	if err != nil {
		return nil, fmt.Errorf("parse course %s category ids: %w", m.ID, err)
	}

	subIDs, err := id.ParseMany(m.SubCategoryIDs, id.PrefixSubCategory)
	if err != nil {
		return nil, fmt.Errorf("parse course %s subcategory ids: %w", m.ID, err)
	}

	return &course.Course{
		Entity: entity.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
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

// convertAll maps every model through from, stopping at the first failure.
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
