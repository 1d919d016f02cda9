package syllabus

import (
	"fmt"
	"log/slog"

	"github.com/xraph/syllabus/observability"
	"github.com/xraph/syllabus/report"
	"github.com/xraph/syllabus/store"
)

// Option configures a Syllabus instance.
type Option func(*Syllabus) error

// WithStore sets the persistence backend for the Syllabus instance.
func WithStore(s store.Store) Option {
	return func(sy *Syllabus) error {
		sy.store = s
		return nil
	}
}

// WithLogger sets the structured logger for the Syllabus instance.
func WithLogger(logger *slog.Logger) Option {
	return func(sy *Syllabus) error {
		sy.logger = logger
		return nil
	}
}

// WithDefaultLimit sets the page size applied when a list request omits limit.
func WithDefaultLimit(n int) Option {
	return func(sy *Syllabus) error {
		if n <= 0 {
			return fmt.Errorf("%w: default limit must be positive, got %d", ErrValidation, n)
		}
		sy.config.DefaultLimit = n
		return nil
	}
}

// WithMetrics enables metric recording.
func WithMetrics(m *observability.Metrics) Option {
	return func(sy *Syllabus) error {
		sy.metrics = m
		return nil
	}
}

// WithTracer enables OpenTelemetry spans for mutations and reports.
func WithTracer(t *observability.Tracer) Option {
	return func(sy *Syllabus) error {
		sy.tracer = t
		return nil
	}
}

// WithReportStore serves reporting views from rs instead of the main store,
// e.g. a store/redis.ReportCache wrapping it.
func WithReportStore(rs report.Store) Option {
	return func(sy *Syllabus) error {
		sy.reportStore = rs
		return nil
	}
}
