package validate_test

import (
	"errors"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/xraph/syllabus"
	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/query"
	"github.com/xraph/syllabus/validate"
)

type sample struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Duration    float64  `json:"duration"`
	Categories  []id.ID  `json:"categoryIds"`
	Rename      *string  `json:"rename"`
	NewDuration *float64 `json:"newDuration"`
}

func (s *sample) validate() error {
	return validate.Struct(s,
		validation.Field(&s.Name, validate.Name...),
		validation.Field(&s.Description, validate.Description...),
		validation.Field(&s.Duration, validate.Duration...),
		validation.Field(&s.Categories, validate.Refs(id.PrefixCategory)...),
		validation.Field(&s.Rename, validate.OptionalName...),
		validation.Field(&s.NewDuration, validate.OptionalDuration...),
	)
}

func valid() sample {
	return sample{
		Name:       "Go",
		Duration:   1.5,
		Categories: []id.ID{id.NewCategoryID()},
	}
}

func TestStructValid(t *testing.T) {
	s := valid()
	if err := s.validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructCollectsFields(t *testing.T) {
	s := sample{
		Name:        "x",
		Description: strings.Repeat("d", 501),
		Duration:    -1,
	}
	err := s.validate()
	if !errors.Is(err, syllabus.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	var ve *validate.Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected *validate.Error, got %T", err)
	}
	msgs := ve.Messages()
	for _, field := range []string{"name", "description", "duration", "categoryIds"} {
		if _, ok := msgs[field]; !ok {
			t.Errorf("expected error for %q, got %v", field, msgs)
		}
	}
}

func TestRefsRejectWrongPrefix(t *testing.T) {
	s := valid()
	s.Categories = []id.ID{id.NewCourseID()}
	if err := s.validate(); !errors.Is(err, syllabus.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRefsRejectNilID(t *testing.T) {
	s := valid()
	s.Categories = []id.ID{id.Nil}
	if err := s.validate(); !errors.Is(err, syllabus.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestOptionalFields(t *testing.T) {
	s := valid()
	short := "a"
	s.Rename = &short
	if err := s.validate(); err == nil {
		t.Fatal("expected error for one-character rename")
	}

	s = valid()
	zero := 0.0
	s.NewDuration = &zero
	if err := s.validate(); err == nil {
		t.Fatal("expected error for zero duration")
	}

	s = valid()
	ok := 3.0
	s.NewDuration = &ok
	if err := s.validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPagination(t *testing.T) {
	intp := func(v int) *int { return &v }

	if err := validate.Pagination(query.Params{}); err != nil {
		t.Fatalf("empty params: %v", err)
	}
	if err := validate.Pagination(query.Params{Skip: intp(-3), Limit: intp(5)}); err != nil {
		t.Fatalf("negative skip is allowed: %v", err)
	}
	if err := validate.Pagination(query.Params{Limit: intp(0)}); err == nil {
		t.Fatal("expected error for zero limit")
	}
	if err := validate.Pagination(query.Params{Limit: intp(-1)}); err == nil {
		t.Fatal("expected error for negative limit")
	}
	if err := validate.Pagination(query.Params{SortOrder: "sideways"}); err == nil {
		t.Fatal("expected error for unknown sort order")
	}
}

func TestInvalid(t *testing.T) {
	err := validate.Invalid("id", "must be a cat id")
	if !errors.Is(err, syllabus.ErrValidation) {
		t.Fatal("expected ErrValidation")
	}
	if err.Messages()["id"] != "must be a cat id" {
		t.Fatalf("unexpected messages: %v", err.Messages())
	}
}
