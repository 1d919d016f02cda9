package category

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/internal/entity"
	"github.com/xraph/syllabus/internal/errs"
	"github.com/xraph/syllabus/observability"
	"github.com/xraph/syllabus/query"
	"github.com/xraph/syllabus/report"
	"github.com/xraph/syllabus/validate"
)

const kind = "category"

// SortFields are the keys a category list may be sorted by.
var SortFields = []string{query.FieldCreatedAt, query.FieldUpdatedAt, query.FieldName}

// Counter serves the categories-with-subcategory-count view.
// *report.Engine satisfies it.
type Counter interface {
	CategoriesWithSubCategoryCount(ctx context.Context) ([]report.CategorySubCategoryCount, error)
}

// Config configures the category service.
type Config struct {
	// DefaultLimit overrides query.DefaultLimit when a list omits limit.
	DefaultLimit int

	Counter Counter
	Metrics *observability.Metrics
	Tracer  *observability.Tracer
}

// Service provides category management operations.
type Service struct {
	store        Store
	counter      Counter
	defaultLimit int
	metrics      *observability.Metrics
	tracer       *observability.Tracer
	logger       *slog.Logger
}

// NewService creates a new category service.
func NewService(store Store, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:        store,
		counter:      cfg.Counter,
		defaultLimit: cfg.DefaultLimit,
		metrics:      cfg.Metrics,
		tracer:       cfg.Tracer,
		logger:       logger,
	}
}

// Create registers a new category. The name must not be used by another
// active category.
func (svc *Service) Create(ctx context.Context, in CreateInput) (_ *Category, err error) {
	ctx, span := svc.tracer.StartMutationSpan(ctx, kind, "create", "")
	defer func() {
		observability.EndSpan(span, err)
		svc.metrics.RecordOutcome(kind, "create", err)
	}()

	if err := in.Validate(); err != nil {
		return nil, err
	}

	if err := svc.ensureNameFree(ctx, in.Name, id.Nil); err != nil {
		return nil, err
	}

	c := &Category{
		Entity:      entity.New(),
		Lifecycle:   entity.Active(),
		ID:          id.NewCategoryID(),
		Name:        in.Name,
		Description: in.Description,
	}

	if err := svc.store.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	svc.logger.Debug("category created", "category_id", c.ID.String(), "name", c.Name)
	return c, nil
}

// List returns one page of active categories.
func (svc *Service) List(ctx context.Context, params query.Params) (query.Page[*Category], error) {
	if err := validate.Pagination(params); err != nil {
		return query.Page[*Category]{}, err
	}
	q := params.WithDefaultLimit(svc.defaultLimit).Normalize(SortFields...)

	start := time.Now()
	rows, total, err := svc.store.ListCategories(ctx, q)
	if err != nil {
		return query.Page[*Category]{}, err
	}
	svc.metrics.RecordList(kind, time.Since(start).Seconds())

	return query.NewPage(rows, total, q), nil
}

// Get returns an active category by ID.
func (svc *Service) Get(ctx context.Context, catID id.ID) (*Category, error) {
	c, err := svc.store.GetCategory(ctx, catID)
	return c, errs.Targeted(err, errs.ErrCategoryNotFound)
}

// Resolve looks up a category referenced by another record. A missing or
// deleted category yields plain syllabus.ErrCategoryNotFound.
func (svc *Service) Resolve(ctx context.Context, catID id.ID) (*Category, error) {
	return svc.store.GetCategory(ctx, catID)
}

// FindByIDs returns the active categories among ids. Missing and deleted ids
// are skipped.
func (svc *Service) FindByIDs(ctx context.Context, ids []id.ID) ([]*Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return svc.store.FindCategoriesByIDs(ctx, ids)
}

// Update applies a partial update to an active category.
func (svc *Service) Update(ctx context.Context, catID id.ID, in UpdateInput) (_ *Category, err error) {
	ctx, span := svc.tracer.StartMutationSpan(ctx, kind, "update", catID.String())
	defer func() {
		observability.EndSpan(span, err)
		svc.metrics.RecordOutcome(kind, "update", err)
	}()

	if err := in.Validate(); err != nil {
		return nil, err
	}

	c, err := svc.Get(ctx, catID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != c.Name {
		if err := svc.ensureNameFree(ctx, *in.Name, c.ID); err != nil {
			return nil, err
		}
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	c.Touch()

	if err := svc.store.UpdateCategory(ctx, c); err != nil {
		return nil, errs.Targeted(err, errs.ErrCategoryNotFound)
	}

	svc.logger.Debug("category updated", "category_id", c.ID.String())
	return c, nil
}

// Remove soft-deletes an active category and returns it in its deleted
// state. Subcategories and courses referencing it are left untouched.
func (svc *Service) Remove(ctx context.Context, catID id.ID) (_ *Category, err error) {
	ctx, span := svc.tracer.StartMutationSpan(ctx, kind, "remove", catID.String())
	defer func() {
		observability.EndSpan(span, err)
		svc.metrics.RecordOutcome(kind, "remove", err)
	}()

	c, err := svc.Get(ctx, catID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if !c.MarkDeleted(now) {
		return nil, errs.Gone(errs.ErrCategoryNotFound)
	}
	c.UpdatedAt = now

	if err := svc.store.UpdateCategory(ctx, c); err != nil {
		return nil, errs.Targeted(err, errs.ErrCategoryNotFound)
	}

	svc.logger.Debug("category removed", "category_id", c.ID.String())
	return c, nil
}

// WithSubCategoryCount returns active categories with their active
// subcategory counts, newest first.
func (svc *Service) WithSubCategoryCount(ctx context.Context) ([]report.CategorySubCategoryCount, error) {
	if svc.counter == nil {
		return nil, errs.ErrNoStore
	}
	return svc.counter.CategoriesWithSubCategoryCount(ctx)
}

func (svc *Service) ensureNameFree(ctx context.Context, name string, exclude id.ID) error {
	taken, err := svc.store.CategoryNameTaken(ctx, name, exclude)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: category %q", errs.ErrDuplicateName, name)
	}
	return nil
}
