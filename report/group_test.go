package report_test

import (
	"testing"

	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/report"
)

func TestGroupByCategory(t *testing.T) {
	tech, biz := id.NewCategoryID(), id.NewCategoryID()
	rows := []report.SubCategoryRow{
		{CategoryID: tech, CategoryName: "Technology", SubCategory: report.SubCategorySummary{Name: "Web"}},
		{CategoryID: biz, CategoryName: "Business", SubCategory: report.SubCategorySummary{Name: "Marketing"}},
		{CategoryID: tech, CategoryName: "Technology", SubCategory: report.SubCategorySummary{Name: "Mobile"}},
	}

	groups := report.GroupByCategory(rows)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].CategoryName != "Business" || groups[1].CategoryName != "Technology" {
		t.Errorf("groups not ordered by name: %q, %q", groups[0].CategoryName, groups[1].CategoryName)
	}
	tg := groups[1]
	if tg.TotalSubCategories != 2 || tg.SubCategories[0].Name != "Web" || tg.SubCategories[1].Name != "Mobile" {
		t.Errorf("technology group = %+v", tg)
	}
}

func TestGroupByCategoryEmpty(t *testing.T) {
	groups := report.GroupByCategory(nil)
	if groups == nil || len(groups) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", groups)
	}
}

func TestGroupByLevel(t *testing.T) {
	rows := []report.LevelRow{
		{Level: "advanced", Course: report.CourseSummary{Name: "A", Duration: 30}},
		{Level: "beginner", Course: report.CourseSummary{Name: "B1", Duration: 10}},
		{Level: "beginner", Course: report.CourseSummary{Name: "B2", Duration: 20}},
		{Level: "intermediate", Course: report.CourseSummary{Name: "I", Duration: 5}},
	}

	groups := report.GroupByLevel(rows)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].Level != "beginner" || groups[0].TotalCourses != 2 || groups[0].AverageDuration != 15 {
		t.Errorf("first group = %+v", groups[0])
	}
	// Equal-sized groups fall back to level name.
	if groups[1].Level != "advanced" || groups[2].Level != "intermediate" {
		t.Errorf("tie order = %q, %q", groups[1].Level, groups[2].Level)
	}
}
