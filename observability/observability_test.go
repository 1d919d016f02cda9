package observability

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/xraph/syllabus/internal/errs"
)

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	m.RecordMutation("category", "create")
	m.RecordRejection("course", "create", "duplicate_name")
	m.RecordList("course", 0.01)
	m.RecordReport("statistics")
	m.RecordOutcome("category", "update", errs.ErrCategoryNotFound)
}

func TestReason(t *testing.T) {
	cases := map[error]string{
		errs.ErrValidation:                                      "validation",
		fmt.Errorf("%w: %q", errs.ErrDuplicateName, "Go"):       "duplicate_name",
		errs.ErrSubCategoryCategoryMismatch:                     "mismatch",
		errs.ErrSubCategoryNotFound:                             "not_found",
		errors.New("connection reset"):                          "error",
	}
	for err, want := range cases {
		if got := Reason(err); got != want {
			t.Errorf("Reason(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestNilTracerStartsNoopSpans(t *testing.T) {
	var tr *Tracer
	ctx, span := tr.StartMutationSpan(context.Background(), "category", "create", "cat_1")
	if ctx == nil || span == nil {
		t.Fatal("expected a usable context and span")
	}
	if span.SpanContext().IsValid() {
		t.Fatal("expected a no-op span")
	}
	EndSpan(span, errors.New("boom"))

	_, span = tr.StartReportSpan(context.Background(), "statistics")
	EndSpan(span, nil)
}

func TestNewTracer(t *testing.T) {
	tr := NewTracer()
	_, span := tr.StartReportSpan(context.Background(), "courses_by_level")
	EndSpan(span, nil)
}
