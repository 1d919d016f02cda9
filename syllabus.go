package syllabus

import (
	"log/slog"

	"github.com/xraph/syllabus/category"
	"github.com/xraph/syllabus/consistency"
	"github.com/xraph/syllabus/course"
	"github.com/xraph/syllabus/observability"
	"github.com/xraph/syllabus/report"
	"github.com/xraph/syllabus/store"
	"github.com/xraph/syllabus/subcategory"
)

// Syllabus is the root catalog engine. It wires the category, subcategory
// and course services and the report engine over a single store.
type Syllabus struct {
	config      Config
	store       store.Store
	reportStore report.Store
	metrics     *observability.Metrics
	tracer      *observability.Tracer
	logger      *slog.Logger

	categories    *category.Service
	subCategories *subcategory.Service
	courses       *course.Service
	validator     *consistency.Validator
	reports       *report.Engine
}

// New creates a new Syllabus with the given options.
func New(opts ...Option) (*Syllabus, error) {
	sy := &Syllabus{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(sy); err != nil {
			return nil, err
		}
	}
	if sy.store == nil {
		return nil, ErrNoStore
	}
	if sy.reportStore == nil {
		sy.reportStore = sy.store
	}
	sy.wireServices()
	return sy, nil
}

// wireServices initializes the internal services after options have been applied.
func (sy *Syllabus) wireServices() {
	sy.reports = report.NewEngine(sy.reportStore, report.Config{
		Metrics: sy.metrics,
		Tracer:  sy.tracer,
	}, sy.logger)

	sy.categories = category.NewService(sy.store, category.Config{
		DefaultLimit: sy.config.DefaultLimit,
		Counter:      sy.reports,
		Metrics:      sy.metrics,
		Tracer:       sy.tracer,
	}, sy.logger)

	sy.subCategories = subcategory.NewService(sy.store, sy.categories, subcategory.Config{
		DefaultLimit: sy.config.DefaultLimit,
		Metrics:      sy.metrics,
		Tracer:       sy.tracer,
	}, sy.logger)

	sy.validator = consistency.NewValidator(sy.subCategories, sy.logger)

	sy.courses = course.NewService(sy.store, sy.categories, sy.subCategories, sy.validator, course.Config{
		DefaultLimit: sy.config.DefaultLimit,
		Metrics:      sy.metrics,
		Tracer:       sy.tracer,
	}, sy.logger)
}

// Categories returns the category service.
func (sy *Syllabus) Categories() *category.Service { return sy.categories }

// SubCategories returns the subcategory service.
func (sy *Syllabus) SubCategories() *subcategory.Service { return sy.subCategories }

// Courses returns the course service.
func (sy *Syllabus) Courses() *course.Service { return sy.courses }

// Validator returns the cross-tier reference validator.
func (sy *Syllabus) Validator() *consistency.Validator { return sy.validator }

// Reports returns the reporting engine.
func (sy *Syllabus) Reports() *report.Engine { return sy.reports }

// Store returns the underlying store.
func (sy *Syllabus) Store() store.Store { return sy.store }

// Config returns the effective configuration.
func (sy *Syllabus) Config() Config { return sy.config }
