package consistency_test

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/syllabus"
	"github.com/xraph/syllabus/consistency"
	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/subcategory"
)

type finder map[id.ID]*subcategory.SubCategory

func (f finder) FindByIDs(_ context.Context, ids []id.ID) ([]*subcategory.SubCategory, error) {
	var out []*subcategory.SubCategory
	seen := map[id.ID]bool{}
	for _, v := range ids {
		if sc, ok := f[v]; ok && !seen[v] {
			seen[v] = true
			out = append(out, sc)
		}
	}
	return out, nil
}

type failing struct{}

func (failing) FindByIDs(context.Context, []id.ID) ([]*subcategory.SubCategory, error) {
	return nil, errors.New("connection refused")
}

func fixture() (finder, id.ID, id.ID, id.ID, id.ID, id.ID) {
	web, mobile := id.NewCategoryID(), id.NewCategoryID()
	js, css, swift := id.NewSubCategoryID(), id.NewSubCategoryID(), id.NewSubCategoryID()
	f := finder{
		js:    {ID: js, CategoryID: web},
		css:   {ID: css, CategoryID: web},
		swift: {ID: swift, CategoryID: mobile},
	}
	return f, web, mobile, js, css, swift
}

func TestValidateOK(t *testing.T) {
	f, web, mobile, js, _, swift := fixture()
	v := consistency.NewValidator(f, nil)

	err := v.ValidateSubCategoriesBelongToCategories(context.Background(), []id.ID{web, mobile}, []id.ID{js, swift})
	if err != nil {
		t.Fatal(err)
	}
}

func TestValidateMissing(t *testing.T) {
	f, web, _, js, _, _ := fixture()
	v := consistency.NewValidator(f, nil)

	err := v.ValidateSubCategoriesBelongToCategories(context.Background(), []id.ID{web}, []id.ID{js, id.NewSubCategoryID()})
	if !errors.Is(err, syllabus.ErrSubCategoryNotFound) {
		t.Fatalf("expected ErrSubCategoryNotFound, got %v", err)
	}

	err = v.ValidateSubCategoriesBelongToCategories(context.Background(), []id.ID{web}, []id.ID{js, js})
	if !errors.Is(err, syllabus.ErrSubCategoryNotFound) {
		t.Fatalf("expected ErrSubCategoryNotFound for repeated id, got %v", err)
	}
}

func TestValidateMismatchListsAllOffenders(t *testing.T) {
	f, _, mobile, js, css, swift := fixture()
	v := consistency.NewValidator(f, nil)

	err := v.ValidateSubCategoriesBelongToCategories(context.Background(), []id.ID{mobile}, []id.ID{js, swift, css})
	if !errors.Is(err, syllabus.ErrSubCategoryCategoryMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
	var mm *consistency.MismatchError
	if !errors.As(err, &mm) {
		t.Fatalf("expected *MismatchError, got %T", err)
	}
	if len(mm.SubCategoryIDs) != 2 || !id.Contains(mm.SubCategoryIDs, js) || !id.Contains(mm.SubCategoryIDs, css) {
		t.Fatalf("expected js and css, got %v", id.Strings(mm.SubCategoryIDs))
	}
}

func TestValidatePropagatesLookupError(t *testing.T) {
	v := consistency.NewValidator(failing{}, nil)
	err := v.ValidateSubCategoriesBelongToCategories(context.Background(), nil, []id.ID{id.NewSubCategoryID()})
	if err == nil || syllabus.IsNotFound(err) {
		t.Fatalf("expected the lookup error, got %v", err)
	}
}
