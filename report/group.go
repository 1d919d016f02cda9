package report

import (
	"sort"

	"github.com/xraph/syllabus/id"
)

// SubCategoryRow is one active subcategory joined with its parent category,
// the flat shape row-oriented stores read before grouping.
type SubCategoryRow struct {
	CategoryID   id.ID
	CategoryName string
	SubCategory  SubCategorySummary
}

// GroupByCategory folds rows into one group per category, ordered by
// category name. Rows keep their input order within a group.
func GroupByCategory(rows []SubCategoryRow) []CategoryGroup {
	index := make(map[id.ID]int)
	var out []CategoryGroup
	for _, r := range rows {
		i, ok := index[r.CategoryID]
		if !ok {
			i = len(out)
			index[r.CategoryID] = i
			out = append(out, CategoryGroup{CategoryID: r.CategoryID, CategoryName: r.CategoryName})
		}
		out[i].SubCategories = append(out[i].SubCategories, r.SubCategory)
		out[i].TotalSubCategories++
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CategoryName < out[j].CategoryName
	})
	if out == nil {
		out = []CategoryGroup{}
	}
	return out
}

// LevelRow is one active course tagged with its level.
type LevelRow struct {
	Level  string
	Course CourseSummary
}

// GroupByLevel folds rows into one group per level with its average
// duration. Groups are ordered largest first, then by level name.
func GroupByLevel(rows []LevelRow) []LevelGroup {
	index := make(map[string]int)
	sums := make(map[string]float64)
	var out []LevelGroup
	for _, r := range rows {
		i, ok := index[r.Level]
		if !ok {
			i = len(out)
			index[r.Level] = i
			out = append(out, LevelGroup{Level: r.Level})
		}
		out[i].Courses = append(out[i].Courses, r.Course)
		out[i].TotalCourses++
		sums[r.Level] += r.Course.Duration
	}

	for i := range out {
		out[i].AverageDuration = sums[out[i].Level] / float64(out[i].TotalCourses)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalCourses != out[j].TotalCourses {
			return out[i].TotalCourses > out[j].TotalCourses
		}
		return out[i].Level < out[j].Level
	})
	if out == nil {
		out = []LevelGroup{}
	}
	return out
}
