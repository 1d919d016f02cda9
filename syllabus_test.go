package syllabus_test

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/syllabus"
	"github.com/xraph/syllabus/category"
	"github.com/xraph/syllabus/consistency"
	"github.com/xraph/syllabus/course"
	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/query"
	"github.com/xraph/syllabus/store/memory"
	"github.com/xraph/syllabus/subcategory"
)

func ctx() context.Context { return context.Background() }

func setup(t *testing.T) (*syllabus.Syllabus, *memory.Store) {
	t.Helper()
	s := memory.New()
	sy, err := syllabus.New(syllabus.WithStore(s))
	if err != nil {
		t.Fatal(err)
	}
	return sy, s
}

func createCategory(t *testing.T, sy *syllabus.Syllabus, name string) *category.Category {
	t.Helper()
	c, err := sy.Categories().Create(ctx(), category.CreateInput{Name: name})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func createSubCategory(t *testing.T, sy *syllabus.Syllabus, name string, catID id.ID) *subcategory.SubCategory {
	t.Helper()
	sc, err := sy.SubCategories().Create(ctx(), subcategory.CreateInput{Name: name, CategoryID: catID})
	if err != nil {
		t.Fatal(err)
	}
	return sc
}

func TestNewRequiresStore(t *testing.T) {
	if _, err := syllabus.New(); !errors.Is(err, syllabus.ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
}

func TestNewRejectsBadDefaultLimit(t *testing.T) {
	_, err := syllabus.New(syllabus.WithStore(memory.New()), syllabus.WithDefaultLimit(0))
	if !errors.Is(err, syllabus.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestDefaultLimitApplied(t *testing.T) {
	sy, err := syllabus.New(syllabus.WithStore(memory.New()), syllabus.WithDefaultLimit(2))
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"One", "Two", "Three"} {
		createCategory(t, sy, name)
	}
	page, err := sy.Categories().List(ctx(), query.Params{})
	if err != nil {
		t.Fatal(err)
	}
	if page.Limit != 2 || len(page.Data) != 2 || !page.HasMore {
		t.Fatalf("expected a 2-row page with more, got limit=%d rows=%d hasMore=%v", page.Limit, len(page.Data), page.HasMore)
	}
}

func TestCategoryNameReuseAfterRemove(t *testing.T) {
	sy, _ := setup(t)

	first := createCategory(t, sy, "Programming")

	_, err := sy.Categories().Create(ctx(), category.CreateInput{Name: "Programming"})
	if !errors.Is(err, syllabus.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	if _, err := sy.Categories().Remove(ctx(), first.ID); err != nil {
		t.Fatal(err)
	}

	second := createCategory(t, sy, "Programming")
	if second.ID == first.ID {
		t.Fatal("expected a new id")
	}
}

func TestSubCategoryBadParentPersistsNothing(t *testing.T) {
	sy, s := setup(t)

	_, err := sy.SubCategories().Create(ctx(), subcategory.CreateInput{
		Name:       "Orphan",
		CategoryID: id.NewCategoryID(),
	})
	if !errors.Is(err, syllabus.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	_, total, err := s.ListSubCategories(ctx(), query.Params{}.Normalize())
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Fatalf("expected nothing persisted, got %d", total)
	}
}

func TestWebDevelopmentScenario(t *testing.T) {
	sy, _ := setup(t)

	web := createCategory(t, sy, "Web Dev")
	js := createSubCategory(t, sy, "JavaScript", web.ID)

	c, err := sy.Courses().Create(ctx(), course.CreateInput{
		Name:           "Full Stack",
		Duration:       40,
		Level:          course.LevelIntermediate,
		CategoryIDs:    []id.ID{web.ID},
		SubCategoryIDs: []id.ID{js.ID},
	})
	if err != nil {
		t.Fatal(err)
	}

	detail, err := sy.Courses().Get(ctx(), c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Categories) != 1 || detail.Categories[0].Name != "Web Dev" {
		t.Fatalf("expected hydrated category, got %+v", detail.Categories)
	}
	if len(detail.SubCategories) != 1 || detail.SubCategories[0].Name != "JavaScript" {
		t.Fatalf("expected hydrated subcategory, got %+v", detail.SubCategories)
	}
	if detail.SubCategories[0].CategoryID != web.ID {
		t.Fatal("expected subcategory ref to carry its category id")
	}
}

func TestMobileDevelopmentMismatch(t *testing.T) {
	sy, s := setup(t)

	web := createCategory(t, sy, "Web Dev")
	mobile := createCategory(t, sy, "Mobile Dev")
	js := createSubCategory(t, sy, "JavaScript", web.ID)

	_, err := sy.Courses().Create(ctx(), course.CreateInput{
		Name:           "Swift Apps",
		Duration:       20,
		Level:          course.LevelBeginner,
		CategoryIDs:    []id.ID{mobile.ID},
		SubCategoryIDs: []id.ID{js.ID},
	})
	if !errors.Is(err, syllabus.ErrSubCategoryCategoryMismatch) {
		t.Fatalf("expected ErrSubCategoryCategoryMismatch, got %v", err)
	}
	var mm *consistency.MismatchError
	if !errors.As(err, &mm) || len(mm.SubCategoryIDs) != 1 || mm.SubCategoryIDs[0] != js.ID {
		t.Fatalf("expected mismatch to name %s, got %v", js.ID, err)
	}

	_, total, err := s.ListCourses(ctx(), query.Params{}.Normalize())
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Fatalf("expected nothing persisted, got %d", total)
	}
}

func TestDoubleRemoveIsNotFound(t *testing.T) {
	sy, _ := setup(t)

	web := createCategory(t, sy, "Web Dev")
	removed, err := sy.Categories().Remove(ctx(), web.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !removed.IsDeleted() || removed.DeletedAt == nil {
		t.Fatal("expected the removed record in its deleted state")
	}

	if _, err := sy.Categories().Remove(ctx(), web.ID); !syllabus.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListNeverReturnsDeleted(t *testing.T) {
	sy, _ := setup(t)

	web := createCategory(t, sy, "Web Dev")
	js := createSubCategory(t, sy, "JavaScript", web.ID)

	var courseIDs []id.ID
	for _, name := range []string{"A1", "A2", "A3", "A4", "A5"} {
		c, err := sy.Courses().Create(ctx(), course.CreateInput{
			Name:           name,
			Duration:       1,
			Level:          course.LevelBeginner,
			CategoryIDs:    []id.ID{web.ID},
			SubCategoryIDs: []id.ID{js.ID},
		})
		if err != nil {
			t.Fatal(err)
		}
		courseIDs = append(courseIDs, c.ID)
	}

	skip, limit := 0, 5
	page, err := sy.Courses().List(ctx(), query.Params{Skip: &skip, Limit: &limit})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 5 || page.HasMore {
		t.Fatalf("expected total=5 hasMore=false, got total=%d hasMore=%v", page.Total, page.HasMore)
	}

	if _, err := sy.Courses().Remove(ctx(), courseIDs[2]); err != nil {
		t.Fatal(err)
	}

	page, err = sy.Courses().List(ctx(), query.Params{})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 4 {
		t.Fatalf("expected 4 active courses, got %d", page.Total)
	}
	for _, d := range page.Data {
		if d.ID == courseIDs[2] {
			t.Fatal("removed course listed")
		}
	}
	if _, err := sy.Courses().Get(ctx(), courseIDs[2]); !errors.Is(err, syllabus.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestReportsThroughEngine(t *testing.T) {
	sy, _ := setup(t)

	web := createCategory(t, sy, "Web Dev")
	createSubCategory(t, sy, "JavaScript", web.ID)
	createSubCategory(t, sy, "CSS", web.ID)

	counts, err := sy.Categories().WithSubCategoryCount(ctx())
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 1 || counts[0].SubCategoryCount != 2 {
		t.Fatalf("unexpected counts: %+v", counts)
	}

	st, err := sy.Reports().Statistics(ctx())
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalCategories != 1 || st.TotalCourses != 0 {
		t.Fatalf("unexpected statistics: %+v", st)
	}
}
