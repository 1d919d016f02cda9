package observability

import (
	"errors"

	gu "github.com/xraph/go-utils/metrics"

	"github.com/xraph/syllabus/internal/errs"
)

// Metrics holds metric instruments for Syllabus, backed by any go-utils MetricFactory
// (e.g. the forge-managed metrics system via fapp.Metrics()).
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	MutationsTotal  gu.Counter
	RejectionsTotal gu.Counter
	ListsTotal      gu.Counter
	ListLatency     gu.Histogram
	ReportsTotal    gu.Counter
}

// NewMetrics creates Syllabus metric instruments using the supplied factory.
func NewMetrics(factory gu.MetricFactory) *Metrics {
	return &Metrics{
		MutationsTotal:  factory.Counter("syllabus_mutations_total"),
		RejectionsTotal: factory.Counter("syllabus_rejections_total"),
		ListsTotal:      factory.Counter("syllabus_lists_total"),
		ListLatency:     factory.Histogram("syllabus_list_latency_seconds"),
		ReportsTotal:    factory.Counter("syllabus_reports_total"),
	}
}

// RecordMutation counts a successful create, update or remove.
func (m *Metrics) RecordMutation(kind, op string) {
	if m == nil {
		return
	}
	m.MutationsTotal.WithLabels(map[string]string{"kind": kind, "op": op}).Inc()
}

// RecordRejection counts a mutation refused by validation.
func (m *Metrics) RecordRejection(kind, op, reason string) {
	if m == nil {
		return
	}
	m.RejectionsTotal.WithLabels(map[string]string{"kind": kind, "op": op, "reason": reason}).Inc()
}

// RecordOutcome records a mutation result: a success, or a rejection labeled
// with the reason derived from err.
func (m *Metrics) RecordOutcome(kind, op string, err error) {
	if err == nil {
		m.RecordMutation(kind, op)
		return
	}
	m.RecordRejection(kind, op, Reason(err))
}

// Reason maps an error to a low-cardinality metric label.
func Reason(err error) string {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return "validation"
	case errors.Is(err, errs.ErrDuplicateName):
		return "duplicate_name"
	case errors.Is(err, errs.ErrSubCategoryCategoryMismatch):
		return "mismatch"
	case errors.Is(err, errs.ErrCategoryNotFound),
		errors.Is(err, errs.ErrSubCategoryNotFound),
		errors.Is(err, errs.ErrCourseNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// RecordList counts a list query and its latency.
func (m *Metrics) RecordList(kind string, latencySeconds float64) {
	if m == nil {
		return
	}
	m.ListsTotal.WithLabels(map[string]string{"kind": kind}).Inc()
	m.ListLatency.Observe(latencySeconds)
}

// RecordReport counts a reporting view served.
func (m *Metrics) RecordReport(view string) {
	if m == nil {
		return
	}
	m.ReportsTotal.WithLabels(map[string]string{"view": view}).Inc()
}
