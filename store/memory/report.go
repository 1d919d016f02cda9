package memory

import (
	"context"
	"sort"

	"github.com/xraph/syllabus/category"
	"github.com/xraph/syllabus/course"
	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/report"
	"github.com/xraph/syllabus/subcategory"
)

// ──────────────────────────────────────────────────
// report.Store
// ──────────────────────────────────────────────────

// CategoriesWithSubCategoryCount returns active categories, newest first,
// each with its count of active subcategories.
func (s *Store) CategoriesWithSubCategoryCount(_ context.Context) ([]report.CategorySubCategoryCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64)
	for _, sc := range s.subCategories {
		if !sc.IsDeleted() {
			counts[sc.CategoryID.String()]++
		}
	}

	cats := s.activeCategoriesLocked()
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].CreatedAt.After(cats[j].CreatedAt)
	})

	out := make([]report.CategorySubCategoryCount, 0, len(cats))
	for _, c := range cats {
		out = append(out, report.CategorySubCategoryCount{
			ID:               c.ID,
			Name:             c.Name,
			Description:      c.Description,
			SubCategoryCount: counts[c.ID.String()],
			CreatedAt:        c.CreatedAt,
			UpdatedAt:        c.UpdatedAt,
		})
	}
	return out, nil
}

// SubCategoriesByCategory groups active subcategories by parent category.
// The parent may itself be soft-deleted; a parent missing from the store
// drops its subcategories.
func (s *Store) SubCategoriesByCategory(_ context.Context) ([]report.CategoryGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subs := make([]*subcategory.SubCategory, 0, len(s.subCategories))
	for _, sc := range s.subCategories {
		if !sc.IsDeleted() {
			subs = append(subs, sc)
		}
	}
	sortByCreated(subs, func(sc *subcategory.SubCategory) (string, int64) { return sc.ID.String(), sc.CreatedAt.UnixNano() })

	rows := make([]report.SubCategoryRow, 0, len(subs))
	for _, sc := range subs {
		parent, ok := s.categories[sc.CategoryID.String()]
		if !ok {
			continue
		}
		rows = append(rows, report.SubCategoryRow{
			CategoryID:   parent.ID,
			CategoryName: parent.Name,
			SubCategory: report.SubCategorySummary{
				ID:          sc.ID,
				Name:        sc.Name,
				Description: sc.Description,
			},
		})
	}
	return report.GroupByCategory(rows), nil
}

// CoursesByLevel groups active courses by level, largest group first.
func (s *Store) CoursesByLevel(_ context.Context) ([]report.LevelGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := s.activeCoursesLocked()
	rows := make([]report.LevelRow, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, report.LevelRow{
			Level: string(c.Level),
			Course: report.CourseSummary{
				ID:          c.ID,
				Name:        c.Name,
				Description: c.Description,
				Duration:    c.Duration,
			},
		})
	}
	return report.GroupByLevel(rows), nil
}

// Statistics summarizes active categories and courses.
func (s *Store) Statistics(_ context.Context) (*report.Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := &report.Statistics{
		TotalCategories: int64(len(s.activeCategoriesLocked())),
	}

	var sum float64
	for i, c := range s.activeCoursesLocked() {
		st.TotalCourses++
		sum += c.Duration
		if i == 0 || c.Duration < st.MinDuration {
			st.MinDuration = c.Duration
		}
		if i == 0 || c.Duration > st.MaxDuration {
			st.MaxDuration = c.Duration
		}
	}
	if st.TotalCourses > 0 {
		st.AverageDuration = sum / float64(st.TotalCourses)
	}
	return st, nil
}

// CoursesWithDetails lists active courses in creation order with the number
// of their references that resolve to stored records.
func (s *Store) CoursesWithDetails(_ context.Context) ([]report.CourseDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := s.activeCoursesLocked()
	out := make([]report.CourseDetail, 0, len(courses))
	for _, c := range courses {
		d := report.CourseDetail{
			ID:             c.ID,
			Name:           c.Name,
			Description:    c.Description,
			Duration:       c.Duration,
			Level:          string(c.Level),
			CategoryIDs:    append([]id.ID(nil), c.CategoryIDs...),
			SubCategoryIDs: append([]id.ID(nil), c.SubCategoryIDs...),
			CreatedAt:      c.CreatedAt,
			UpdatedAt:      c.UpdatedAt,
		}
		for _, v := range uniqueIDs(c.CategoryIDs) {
			if _, ok := s.categories[v.String()]; ok {
				d.CategoryCount++
			}
		}
		for _, v := range uniqueIDs(c.SubCategoryIDs) {
			if _, ok := s.subCategories[v.String()]; ok {
				d.SubCategoryCount++
			}
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Store) activeCategoriesLocked() []*category.Category {
	out := make([]*category.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if !c.IsDeleted() {
			out = append(out, c)
		}
	}
	sortByCreated(out, func(c *category.Category) (string, int64) { return c.ID.String(), c.CreatedAt.UnixNano() })
	return out
}

func (s *Store) activeCoursesLocked() []*course.Course {
	out := make([]*course.Course, 0, len(s.courses))
	for _, c := range s.courses {
		if !c.IsDeleted() {
			out = append(out, c)
		}
	}
	sortByCreated(out, func(c *course.Course) (string, int64) { return c.ID.String(), c.CreatedAt.UnixNano() })
	return out
}

// uniqueIDs mirrors a $lookup, which matches each foreign record once no
// matter how often its id repeats in the local array.
func uniqueIDs(ids []id.ID) []id.ID {
	var out []id.ID
	for _, v := range ids {
		if !id.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
