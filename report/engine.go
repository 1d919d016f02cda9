package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/syllabus/observability"
)

// Config configures the report engine.
type Config struct {
	Metrics *observability.Metrics
	Tracer  *observability.Tracer
}

// Engine serves reporting views from a Store, tracing and counting each one.
type Engine struct {
	store   Store
	metrics *observability.Metrics
	tracer  *observability.Tracer
	logger  *slog.Logger
}

// NewEngine creates a report engine backed by store.
func NewEngine(store Store, cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:   store,
		metrics: cfg.Metrics,
		tracer:  cfg.Tracer,
		logger:  logger,
	}
}

// CategoriesWithSubCategoryCount returns active categories with their active
// subcategory counts, newest first.
func (e *Engine) CategoriesWithSubCategoryCount(ctx context.Context) ([]CategorySubCategoryCount, error) {
	return run(ctx, e, ViewCategoriesWithSubCategoryCount, e.store.CategoriesWithSubCategoryCount)
}

// SubCategoriesByCategory returns active subcategories grouped by category.
func (e *Engine) SubCategoriesByCategory(ctx context.Context) ([]CategoryGroup, error) {
	return run(ctx, e, ViewSubCategoriesByCategory, e.store.SubCategoriesByCategory)
}

// CoursesByLevel returns active courses grouped by level.
func (e *Engine) CoursesByLevel(ctx context.Context) ([]LevelGroup, error) {
	return run(ctx, e, ViewCoursesByLevel, e.store.CoursesByLevel)
}

// Statistics returns catalog-wide counters.
func (e *Engine) Statistics(ctx context.Context) (*Statistics, error) {
	return run(ctx, e, ViewStatistics, e.store.Statistics)
}

// CoursesWithDetails returns active courses with reference counts.
func (e *Engine) CoursesWithDetails(ctx context.Context) ([]CourseDetail, error) {
	return run(ctx, e, ViewCoursesWithDetails, e.store.CoursesWithDetails)
}

func run[T any](ctx context.Context, e *Engine, view string, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := e.tracer.StartReportSpan(ctx, view)
	start := time.Now()

	out, err := fn(ctx)
	observability.EndSpan(span, err)
	if err != nil {
		e.logger.Error("report failed", "view", view, "error", err)
		return out, err
	}

	e.metrics.RecordReport(view)
	e.logger.Debug("report served", "view", view, "elapsed", time.Since(start))
	return out, nil
}
