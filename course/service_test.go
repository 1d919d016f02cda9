package course_test

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

type fixture struct {
	store   *memory.Store
	cats    *category.Service
	subs    *subcategory.Service
	courses *course.Service
}

func newFixture() *fixture {
	s := memory.New()
	cats := category.NewService(s, category.Config{}, nil)
	subs := subcategory.NewService(s, cats, subcategory.Config{}, nil)
	checker := consistency.NewValidator(subs, nil)
	return &fixture{
		store:   s,
		cats:    cats,
		subs:    subs,
		courses: course.NewService(s, cats, subs, checker, course.Config{}, nil),
	}
}

func (f *fixture) category(t *testing.T, name string) id.ID {
	t.Helper()
	c, err := f.cats.Create(ctx(), category.CreateInput{Name: name})
	if err != nil {
		t.Fatal(err)
	}
	return c.ID
}

func (f *fixture) subCategory(t *testing.T, name string, catID id.ID) id.ID {
	t.Helper()
	sc, err := f.subs.Create(ctx(), subcategory.CreateInput{Name: name, CategoryID: catID})
	if err != nil {
		t.Fatal(err)
	}
	return sc.ID
}

func (f *fixture) course(t *testing.T, in course.CreateInput) *course.Course {
	t.Helper()
	c, err := f.courses.Create(ctx(), in)
	if err != nil {
		t.Fatalf("create course %q: %v", in.Name, err)
	}
	return c
}

func input(name string, cats, subs []id.ID) course.CreateInput {
	return course.CreateInput{
		Name:           name,
		Description:    "about " + name,
		Duration:       10,
		Level:          course.LevelBeginner,
		CategoryIDs:    cats,
		SubCategoryIDs: subs,
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFixture()

	_, err := f.courses.Create(ctx(), course.CreateInput{Name: "Go"})
	if !errors.Is(err, syllabus.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	in := input("Go", []id.ID{id.NewCategoryID()}, []id.ID{id.NewSubCategoryID()})
	in.Level = "expert"
	if _, err := f.courses.Create(ctx(), in); !errors.Is(err, syllabus.ErrValidation) {
		t.Fatalf("expected ErrValidation for level, got %v", err)
	}
}

func TestCreateChecksReferencesBeforeName(t *testing.T) {
	f := newFixture()
	web := f.category(t, "Web")
	js := f.subCategory(t, "JavaScript", web)

	if _, err := f.courses.Create(ctx(), input("Full Stack", []id.ID{web}, []id.ID{js})); err != nil {
		t.Fatal(err)
	}

	// Same name with a bad category: the reference error wins.
	_, err := f.courses.Create(ctx(), input("Full Stack", []id.ID{id.NewCategoryID()}, []id.ID{js}))
	if !errors.Is(err, syllabus.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	_, err = f.courses.Create(ctx(), input("Full Stack", []id.ID{web}, []id.ID{js}))
	if !errors.Is(err, syllabus.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestCreateMissingSubCategory(t *testing.T) {
	f := newFixture()
	web := f.category(t, "Web")
	js := f.subCategory(t, "JavaScript", web)

	_, err := f.courses.Create(ctx(), input("Go", []id.ID{web}, []id.ID{js, id.NewSubCategoryID()}))
	if !errors.Is(err, syllabus.ErrSubCategoryNotFound) {
		t.Fatalf("expected ErrSubCategoryNotFound, got %v", err)
	}

	// A repeated id counts twice against a single match.
	_, err = f.courses.Create(ctx(), input("Go", []id.ID{web}, []id.ID{js, js}))
	if !errors.Is(err, syllabus.ErrSubCategoryNotFound) {
		t.Fatalf("expected ErrSubCategoryNotFound for repeated id, got %v", err)
	}
}

func TestUpdateBothReferences(t *testing.T) {
	f := newFixture()
	web, mobile := f.category(t, "Web"), f.category(t, "Mobile")
	js, swift := f.subCategory(t, "JavaScript", web), f.subCategory(t, "Swift", mobile)

	c := f.course(t, input("Apps", []id.ID{web}, []id.ID{js}))

	got, err := f.courses.Update(ctx(), c.ID, course.UpdateInput{
		CategoryIDs:    []id.ID{mobile},
		SubCategoryIDs: []id.ID{swift},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.CategoryIDs[0] != mobile || got.SubCategoryIDs[0] != swift {
		t.Fatal("expected references replaced")
	}
}

func TestUpdateOnlyCategoriesChecksStoredSubCategories(t *testing.T) {
	f := newFixture()
	web, mobile := f.category(t, "Web"), f.category(t, "Mobile")
	js := f.subCategory(t, "JavaScript", web)

	c := f.course(t, input("Apps", []id.ID{web}, []id.ID{js}))

	_, err := f.courses.Update(ctx(), c.ID, course.UpdateInput{CategoryIDs: []id.ID{mobile}})
	if !errors.Is(err, syllabus.ErrSubCategoryCategoryMismatch) {
		t.Fatalf("expected mismatch against stored subcategories, got %v", err)
	}

	got, err := f.courses.Update(ctx(), c.ID, course.UpdateInput{CategoryIDs: []id.ID{web, mobile}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.CategoryIDs) != 2 || len(got.SubCategoryIDs) != 1 {
		t.Fatal("expected categories widened and subcategories kept")
	}

	_, err = f.courses.Update(ctx(), c.ID, course.UpdateInput{CategoryIDs: []id.ID{web, id.NewCategoryID()}})
	if !errors.Is(err, syllabus.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestUpdateOnlySubCategoriesChecksStoredCategories(t *testing.T) {
	f := newFixture()
	web, mobile := f.category(t, "Web"), f.category(t, "Mobile")
	js := f.subCategory(t, "JavaScript", web)
	css := f.subCategory(t, "CSS", web)
	swift := f.subCategory(t, "Swift", mobile)

	c := f.course(t, input("Apps", []id.ID{web}, []id.ID{js}))

	if _, err := f.courses.Update(ctx(), c.ID, course.UpdateInput{SubCategoryIDs: []id.ID{css}}); err != nil {
		t.Fatal(err)
	}

	_, err := f.courses.Update(ctx(), c.ID, course.UpdateInput{SubCategoryIDs: []id.ID{css, swift}})
	var mm *consistency.MismatchError
	if !errors.As(err, &mm) || len(mm.SubCategoryIDs) != 1 || mm.SubCategoryIDs[0] != swift {
		t.Fatalf("expected mismatch naming swift, got %v", err)
	}
}

func TestUpdateWithoutReferencesSkipsCheck(t *testing.T) {
	f := newFixture()
	web := f.category(t, "Web")
	js := f.subCategory(t, "JavaScript", web)
	c := f.course(t, input("Apps", []id.ID{web}, []id.ID{js}))

	// A stale reference does not block unrelated edits.
	if _, err := f.subs.Remove(ctx(), js); err != nil {
		t.Fatal(err)
	}
	duration := 12.5
	got, err := f.courses.Update(ctx(), c.ID, course.UpdateInput{Duration: &duration})
	if err != nil {
		t.Fatal(err)
	}
	if got.Duration != 12.5 {
		t.Fatalf("expected duration 12.5, got %v", got.Duration)
	}
}

func TestUpdateName(t *testing.T) {
	f := newFixture()
	web := f.category(t, "Web")
	js := f.subCategory(t, "JavaScript", web)
	a := f.course(t, input("Alpha", []id.ID{web}, []id.ID{js}))
	f.course(t, input("Beta", []id.ID{web}, []id.ID{js}))

	same := "Alpha"
	if _, err := f.courses.Update(ctx(), a.ID, course.UpdateInput{Name: &same}); err != nil {
		t.Fatalf("renaming to own name: %v", err)
	}

	taken := "Beta"
	if _, err := f.courses.Update(ctx(), a.ID, course.UpdateInput{Name: &taken}); !errors.Is(err, syllabus.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	stored, err := f.courses.Get(ctx(), a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Name != "Alpha" {
		t.Fatal("rejected update must not persist")
	}
}

func TestRemove(t *testing.T) {
	f := newFixture()
	web := f.category(t, "Web")
	js := f.subCategory(t, "JavaScript", web)
	c := f.course(t, input("Apps", []id.ID{web}, []id.ID{js}))

	removed, err := f.courses.Remove(ctx(), c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !removed.IsDeleted() {
		t.Fatal("expected deleted state")
	}
	if _, err := f.courses.Remove(ctx(), c.ID); !errors.Is(err, syllabus.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
	if _, err := f.courses.Update(ctx(), c.ID, course.UpdateInput{}); !errors.Is(err, syllabus.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestFindByReferenceAndHydration(t *testing.T) {
	f := newFixture()
	web, data := f.category(t, "Web"), f.category(t, "Data")
	js, sql := f.subCategory(t, "JavaScript", web), f.subCategory(t, "SQL", data)

	f.course(t, input("Front", []id.ID{web}, []id.ID{js}))
	f.course(t, input("Full", []id.ID{web, data}, []id.ID{js, sql}))

	byCat, err := f.courses.FindByCategory(ctx(), data)
	if err != nil {
		t.Fatal(err)
	}
	if len(byCat) != 1 || byCat[0].Name != "Full" || len(byCat[0].SubCategories) != 2 {
		t.Fatalf("unexpected courses by category: %+v", byCat)
	}

	bySub, err := f.courses.FindBySubCategory(ctx(), js)
	if err != nil {
		t.Fatal(err)
	}
	if len(bySub) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(bySub))
	}

	// Soft-deleted references drop out of hydrated views.
	if _, err := f.cats.Remove(ctx(), data); err != nil {
		t.Fatal(err)
	}
	page, err := f.courses.List(ctx(), query.Params{Search: "full"})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || len(page.Data[0].Categories) != 1 || page.Data[0].Categories[0].Name != "Web" {
		t.Fatalf("unexpected hydration after parent removal: %+v", page.Data)
	}
	if len(page.Data[0].CategoryIDs) != 2 {
		t.Fatal("stored references must be untouched by removal")
	}
}

func TestListValidation(t *testing.T) {
	f := newFixture()
	zero := 0
	if _, err := f.courses.List(ctx(), query.Params{Limit: &zero}); !errors.Is(err, syllabus.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestTargetNotFoundIsEntityNotFound(t *testing.T) {
	f := newFixture()
	web := f.category(t, "Web")
	js := f.subCategory(t, "JavaScript", web)
	c := f.course(t, input("Apps", []id.ID{web}, []id.ID{js}))
	if _, err := f.courses.Remove(ctx(), c.ID); err != nil {
		t.Fatal(err)
	}

	_, err := f.courses.Remove(ctx(), c.ID)
	if !errors.Is(err, syllabus.ErrEntityNotFound) || !errors.Is(err, syllabus.ErrCourseNotFound) {
		t.Fatalf("expected ErrEntityNotFound and ErrCourseNotFound, got %v", err)
	}
	if _, err := f.courses.Get(ctx(), c.ID); !errors.Is(err, syllabus.ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound from get, got %v", err)
	}

	// A missing category reference is not a missing target.
	_, err = f.courses.Create(ctx(), input("Data", []id.ID{id.NewCategoryID()}, []id.ID{js}))
	if !errors.Is(err, syllabus.ErrCategoryNotFound) || errors.Is(err, syllabus.ErrEntityNotFound) {
		t.Fatalf("expected plain ErrCategoryNotFound, got %v", err)
	}
}
