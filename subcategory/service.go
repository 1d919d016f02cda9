package subcategory

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/syllabus/category"
	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/internal/entity"
	"github.com/xraph/syllabus/internal/errs"
	"github.com/xraph/syllabus/observability"
	"github.com/xraph/syllabus/query"
	"github.com/xraph/syllabus/validate"
)

const kind = "subcategory"

// SortFields are the keys a subcategory list may be sorted by.
var SortFields = []string{query.FieldCreatedAt, query.FieldUpdatedAt, query.FieldName}

// CategoryLookup resolves parent categories. *category.Service satisfies it.
type CategoryLookup interface {
	Resolve(ctx context.Context, catID id.ID) (*category.Category, error)
	FindByIDs(ctx context.Context, ids []id.ID) ([]*category.Category, error)
}

// Config configures the subcategory service.
type Config struct {
	// DefaultLimit overrides query.DefaultLimit when a list omits limit.
	DefaultLimit int

	Metrics *observability.Metrics
	Tracer  *observability.Tracer
}

// Service provides subcategory management operations.
type Service struct {
	store        Store
	categories   CategoryLookup
	defaultLimit int
	metrics      *observability.Metrics
	tracer       *observability.Tracer
	logger       *slog.Logger
}

// NewService creates a new subcategory service.
func NewService(store Store, categories CategoryLookup, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:        store,
		categories:   categories,
		defaultLimit: cfg.DefaultLimit,
		metrics:      cfg.Metrics,
		tracer:       cfg.Tracer,
		logger:       logger,
	}
}

// Create registers a new subcategory under an active category.
func (svc *Service) Create(ctx context.Context, in CreateInput) (_ *SubCategory, err error) {
	ctx, span := svc.tracer.StartMutationSpan(ctx, kind, "create", "")
	defer func() {
		observability.EndSpan(span, err)
		svc.metrics.RecordOutcome(kind, "create", err)
	}()

	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := svc.categories.Resolve(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	sc := &SubCategory{
		Entity:      entity.New(),
		Lifecycle:   entity.Active(),
		ID:          id.NewSubCategoryID(),
		Name:        in.Name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
	}

	if err := svc.store.CreateSubCategory(ctx, sc); err != nil {
		return nil, err
	}

	svc.logger.Debug("subcategory created",
		"subcategory_id", sc.ID.String(),
		"category_id", sc.CategoryID.String(),
	)
	return sc, nil
}

// List returns one page of active subcategories with their parent
// categories resolved.
func (svc *Service) List(ctx context.Context, params query.Params) (query.Page[*Detail], error) {
	if err := validate.Pagination(params); err != nil {
		return query.Page[*Detail]{}, err
	}
	q := params.WithDefaultLimit(svc.defaultLimit).Normalize(SortFields...)

	start := time.Now()
	rows, total, err := svc.store.ListSubCategories(ctx, q)
	if err != nil {
		return query.Page[*Detail]{}, err
	}
	svc.metrics.RecordList(kind, time.Since(start).Seconds())

	details, err := svc.hydrate(ctx, rows)
	if err != nil {
		return query.Page[*Detail]{}, err
	}
	return query.NewPage(details, total, q), nil
}

// Get returns an active subcategory by ID with its parent category resolved.
func (svc *Service) Get(ctx context.Context, scID id.ID) (*Detail, error) {
	sc, err := svc.store.GetSubCategory(ctx, scID)
	if err != nil {
		return nil, errs.Targeted(err, errs.ErrSubCategoryNotFound)
	}
	details, err := svc.hydrate(ctx, []*SubCategory{sc})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

// FindByIDs returns the active subcategories among ids. Missing and deleted
// ids are skipped.
func (svc *Service) FindByIDs(ctx context.Context, ids []id.ID) ([]*SubCategory, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return svc.store.FindSubCategoriesByIDs(ctx, ids)
}

// FindByCategory returns the active subcategories of a category.
func (svc *Service) FindByCategory(ctx context.Context, catID id.ID) ([]*SubCategory, error) {
	return svc.store.FindSubCategoriesByCategory(ctx, catID)
}

// Update applies a partial update to an active subcategory. A new category
// is only checked when it differs from the current one.
func (svc *Service) Update(ctx context.Context, scID id.ID, in UpdateInput) (_ *SubCategory, err error) {
	ctx, span := svc.tracer.StartMutationSpan(ctx, kind, "update", scID.String())
	defer func() {
		observability.EndSpan(span, err)
		svc.metrics.RecordOutcome(kind, "update", err)
	}()

	if err := in.Validate(); err != nil {
		return nil, err
	}

	sc, err := svc.store.GetSubCategory(ctx, scID)
	if err != nil {
		return nil, errs.Targeted(err, errs.ErrSubCategoryNotFound)
	}

	if in.CategoryID != nil && *in.CategoryID != sc.CategoryID {
		if _, err := svc.categories.Resolve(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		sc.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		sc.Name = *in.Name
	}
	if in.Description != nil {
		sc.Description = *in.Description
	}
	sc.Touch()

	if err := svc.store.UpdateSubCategory(ctx, sc); err != nil {
		return nil, errs.Targeted(err, errs.ErrSubCategoryNotFound)
	}

	svc.logger.Debug("subcategory updated", "subcategory_id", sc.ID.String())
	return sc, nil
}

// Remove soft-deletes an active subcategory and returns it in its deleted
// state. Courses referencing it are left untouched.
func (svc *Service) Remove(ctx context.Context, scID id.ID) (_ *SubCategory, err error) {
	ctx, span := svc.tracer.StartMutationSpan(ctx, kind, "remove", scID.String())
	defer func() {
		observability.EndSpan(span, err)
		svc.metrics.RecordOutcome(kind, "remove", err)
	}()

	sc, err := svc.store.GetSubCategory(ctx, scID)
	if err != nil {
		return nil, errs.Targeted(err, errs.ErrSubCategoryNotFound)
	}

	now := time.Now().UTC()
	if !sc.MarkDeleted(now) {
		return nil, errs.Gone(errs.ErrSubCategoryNotFound)
	}
	sc.UpdatedAt = now

	if err := svc.store.UpdateSubCategory(ctx, sc); err != nil {
		return nil, errs.Targeted(err, errs.ErrSubCategoryNotFound)
	}

	svc.logger.Debug("subcategory removed", "subcategory_id", sc.ID.String())
	return sc, nil
}

// hydrate resolves parent categories with one batched lookup.
func (svc *Service) hydrate(ctx context.Context, rows []*SubCategory) ([]*Detail, error) {
	var parentIDs []id.ID
	for _, sc := range rows {
		if !id.Contains(parentIDs, sc.CategoryID) {
			parentIDs = append(parentIDs, sc.CategoryID)
		}
	}

	parents, err := svc.categories.FindByIDs(ctx, parentIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[id.ID]category.Ref, len(parents))
	for _, c := range parents {
		byID[c.ID] = c.Ref()
	}

	out := make([]*Detail, len(rows))
	for i, sc := range rows {
		d := &Detail{SubCategory: sc}
		if ref, ok := byID[sc.CategoryID]; ok {
			d.Category = &ref
		}
		out[i] = d
	}
	return out, nil
}
