package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/syllabus/report"
)

type stubStore struct {
	err   error
	calls map[string]int
}

func (s *stubStore) hit(view string) { s.calls[view]++ }

func (s *stubStore) CategoriesWithSubCategoryCount(context.Context) ([]report.CategorySubCategoryCount, error) {
	s.hit(report.ViewCategoriesWithSubCategoryCount)
	return []report.CategorySubCategoryCount{{Name: "Web", SubCategoryCount: 2}}, s.err
}

func (s *stubStore) SubCategoriesByCategory(context.Context) ([]report.CategoryGroup, error) {
	s.hit(report.ViewSubCategoriesByCategory)
	return nil, s.err
}

func (s *stubStore) CoursesByLevel(context.Context) ([]report.LevelGroup, error) {
	s.hit(report.ViewCoursesByLevel)
	return []report.LevelGroup{{Level: "beginner", TotalCourses: 1}}, s.err
}

func (s *stubStore) Statistics(context.Context) (*report.Statistics, error) {
	s.hit(report.ViewStatistics)
	return &report.Statistics{TotalCourses: 3}, s.err
}

func (s *stubStore) CoursesWithDetails(context.Context) ([]report.CourseDetail, error) {
	s.hit(report.ViewCoursesWithDetails)
	return nil, s.err
}

func TestEngineDelegates(t *testing.T) {
	s := &stubStore{calls: map[string]int{}}
	e := report.NewEngine(s, report.Config{}, nil)
	ctx := context.Background()

	counts, err := e.CategoriesWithSubCategoryCount(ctx)
	if err != nil || len(counts) != 1 || counts[0].SubCategoryCount != 2 {
		t.Fatalf("unexpected counts %+v, err %v", counts, err)
	}
	if _, err := e.SubCategoriesByCategory(ctx); err != nil {
		t.Fatal(err)
	}
	levels, err := e.CoursesByLevel(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if levels[0].Level != "beginner" {
		t.Fatalf("unexpected levels %+v", levels)
	}
	st, err := e.Statistics(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalCourses != 3 {
		t.Fatalf("unexpected statistics %+v", st)
	}
	if _, err := e.CoursesWithDetails(ctx); err != nil {
		t.Fatal(err)
	}

	for _, view := range []string{
		report.ViewCategoriesWithSubCategoryCount,
		report.ViewSubCategoriesByCategory,
		report.ViewCoursesByLevel,
		report.ViewStatistics,
		report.ViewCoursesWithDetails,
	} {
		if s.calls[view] != 1 {
			t.Errorf("expected one call for %s, got %d", view, s.calls[view])
		}
	}
}

func TestEnginePropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	e := report.NewEngine(&stubStore{err: boom, calls: map[string]int{}}, report.Config{}, nil)

	if _, err := e.Statistics(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
