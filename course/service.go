package course

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/xraph/syllabus/category"
	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/internal/entity"
	"github.com/xraph/syllabus/internal/errs"
	"github.com/xraph/syllabus/observability"
	"github.com/xraph/syllabus/query"
	"github.com/xraph/syllabus/subcategory"
	"github.com/xraph/syllabus/validate"
)

const kind = "course"

// SortFields are the keys a course list may be sorted by.
var SortFields = []string{
	query.FieldCreatedAt,
	query.FieldUpdatedAt,
	query.FieldName,
	query.FieldDuration,
	query.FieldLevel,
}

// CategoryLookup resolves categories. *category.Service satisfies it.
type CategoryLookup interface {
	Resolve(ctx context.Context, catID id.ID) (*category.Category, error)
	FindByIDs(ctx context.Context, ids []id.ID) ([]*category.Category, error)
}

// SubCategoryLookup resolves subcategories. *subcategory.Service satisfies it.
type SubCategoryLookup interface {
	FindByIDs(ctx context.Context, ids []id.ID) ([]*subcategory.SubCategory, error)
}

// ReferenceChecker enforces that subcategories belong to categories.
// *consistency.Validator satisfies it.
type ReferenceChecker interface {
	ValidateSubCategoriesBelongToCategories(ctx context.Context, categoryIDs, subCategoryIDs []id.ID) error
}

// Config configures the course service.
type Config struct {
	// DefaultLimit overrides query.DefaultLimit when a list omits limit.
	DefaultLimit int

	Metrics *observability.Metrics
	Tracer  *observability.Tracer
}

// Service provides course management operations.
type Service struct {
	store         Store
	categories    CategoryLookup
	subCategories SubCategoryLookup
	checker       ReferenceChecker
	defaultLimit  int
	metrics       *observability.Metrics
	tracer        *observability.Tracer
	logger        *slog.Logger
}

// NewService creates a new course service.
func NewService(
	store Store,
	categories CategoryLookup,
	subCategories SubCategoryLookup,
	checker ReferenceChecker,
	cfg Config,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:         store,
		categories:    categories,
		subCategories: subCategories,
		checker:       checker,
		defaultLimit:  cfg.DefaultLimit,
		metrics:       cfg.Metrics,
		tracer:        cfg.Tracer,
		logger:        logger,
	}
}

// Create registers a new course. Every category must be active, every
// subcategory must be active and belong to one of the categories, and the
// name must not be used by another active course. References are checked
// before the name.
func (svc *Service) Create(ctx context.Context, in CreateInput) (_ *Course, err error) {
	ctx, span := svc.tracer.StartMutationSpan(ctx, kind, "create", "")
	defer func() {
		observability.EndSpan(span, err)
		svc.metrics.RecordOutcome(kind, "create", err)
	}()

	if err := in.Validate(); err != nil {
		return nil, err
	}

	if err := svc.requireCategories(ctx, in.CategoryIDs); err != nil {
		return nil, err
	}
	if err := svc.checker.ValidateSubCategoriesBelongToCategories(ctx, in.CategoryIDs, in.SubCategoryIDs); err != nil {
		return nil, err
	}

	if err := svc.ensureNameFree(ctx, in.Name, id.Nil); err != nil {
		return nil, err
	}

	c := &Course{
		Entity:         entity.New(),
		Lifecycle:      entity.Active(),
		ID:             id.NewCourseID(),
		Name:           in.Name,
		Description:    in.Description,
		Duration:       in.Duration,
		Level:          in.Level,
		CategoryIDs:    slices.Clone(in.CategoryIDs),
		SubCategoryIDs: slices.Clone(in.SubCategoryIDs),
	}

	if err := svc.store.CreateCourse(ctx, c); err != nil {
		return nil, err
	}

	svc.logger.Debug("course created",
		"course_id", c.ID.String(),
		"categories", len(c.CategoryIDs),
		"subcategories", len(c.SubCategoryIDs),
	)
	return c, nil
}

// List returns one page of active courses with their references resolved.
func (svc *Service) List(ctx context.Context, params query.Params) (query.Page[*Detail], error) {
	if err := validate.Pagination(params); err != nil {
		return query.Page[*Detail]{}, err
	}
	q := params.WithDefaultLimit(svc.defaultLimit).Normalize(SortFields...)

	start := time.Now()
	rows, total, err := svc.store.ListCourses(ctx, q)
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

// Get returns an active course by ID with its references resolved.
func (svc *Service) Get(ctx context.Context, courseID id.ID) (*Detail, error) {
	c, err := svc.store.GetCourse(ctx, courseID)
	if err != nil {
		return nil, errs.Targeted(err, errs.ErrCourseNotFound)
	}
	details, err := svc.hydrate(ctx, []*Course{c})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

// FindByCategory returns the active courses referencing a category.
func (svc *Service) FindByCategory(ctx context.Context, catID id.ID) ([]*Detail, error) {
	rows, err := svc.store.FindCoursesByCategory(ctx, catID)
	if err != nil {
		return nil, err
	}
	return svc.hydrate(ctx, rows)
}

// FindBySubCategory returns the active courses referencing a subcategory.
func (svc *Service) FindBySubCategory(ctx context.Context, scID id.ID) ([]*Detail, error) {
	rows, err := svc.store.FindCoursesBySubCategory(ctx, scID)
	if err != nil {
		return nil, err
	}
	return svc.hydrate(ctx, rows)
}

// Update applies a partial update to an active course.
//
// When either reference list is given the pair is re-checked: new
// categories against new subcategories, new categories against the stored
// subcategories, or the stored categories against new subcategories.
// New categories are each required to be active first.
func (svc *Service) Update(ctx context.Context, courseID id.ID, in UpdateInput) (_ *Course, err error) {
	ctx, span := svc.tracer.StartMutationSpan(ctx, kind, "update", courseID.String())
	defer func() {
		observability.EndSpan(span, err)
		svc.metrics.RecordOutcome(kind, "update", err)
	}()

	if err := in.Validate(); err != nil {
		return nil, err
	}

	c, err := svc.store.GetCourse(ctx, courseID)
	if err != nil {
		return nil, errs.Targeted(err, errs.ErrCourseNotFound)
	}

	catIDs, subIDs := c.CategoryIDs, c.SubCategoryIDs
	switch {
	case in.CategoryIDs != nil && in.SubCategoryIDs != nil:
		catIDs, subIDs = in.CategoryIDs, in.SubCategoryIDs
	case in.CategoryIDs != nil:
		catIDs = in.CategoryIDs
	case in.SubCategoryIDs != nil:
		subIDs = in.SubCategoryIDs
	}
	if in.CategoryIDs != nil {
		if err := svc.requireCategories(ctx, catIDs); err != nil {
			return nil, err
		}
	}
	if in.CategoryIDs != nil || in.SubCategoryIDs != nil {
		if err := svc.checker.ValidateSubCategoriesBelongToCategories(ctx, catIDs, subIDs); err != nil {
			return nil, err
		}
	}

	if in.Name != nil && *in.Name != c.Name {
		if err := svc.ensureNameFree(ctx, *in.Name, c.ID); err != nil {
			return nil, err
		}
	}

	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Duration != nil {
		c.Duration = *in.Duration
	}
	if in.Level != nil {
		c.Level = *in.Level
	}
	c.CategoryIDs = slices.Clone(catIDs)
	c.SubCategoryIDs = slices.Clone(subIDs)
	c.Touch()

	if err := svc.store.UpdateCourse(ctx, c); err != nil {
		return nil, errs.Targeted(err, errs.ErrCourseNotFound)
	}

	svc.logger.Debug("course updated", "course_id", c.ID.String())
	return c, nil
}

// Remove soft-deletes an active course and returns it in its deleted state.
func (svc *Service) Remove(ctx context.Context, courseID id.ID) (_ *Course, err error) {
	ctx, span := svc.tracer.StartMutationSpan(ctx, kind, "remove", courseID.String())
	defer func() {
		observability.EndSpan(span, err)
		svc.metrics.RecordOutcome(kind, "remove", err)
	}()

	c, err := svc.store.GetCourse(ctx, courseID)
	if err != nil {
		return nil, errs.Targeted(err, errs.ErrCourseNotFound)
	}

	now := time.Now().UTC()
	if !c.MarkDeleted(now) {
		return nil, errs.Gone(errs.ErrCourseNotFound)
	}
	c.UpdatedAt = now

	if err := svc.store.UpdateCourse(ctx, c); err != nil {
		return nil, errs.Targeted(err, errs.ErrCourseNotFound)
	}

	svc.logger.Debug("course removed", "course_id", c.ID.String())
	return c, nil
}

// requireCategories looks up each category in order and stops at the first
// one that is missing or deleted.
func (svc *Service) requireCategories(ctx context.Context, catIDs []id.ID) error {
	for _, catID := range catIDs {
		if _, err := svc.categories.Resolve(ctx, catID); err != nil {
			return err
		}
	}
	return nil
}

func (svc *Service) ensureNameFree(ctx context.Context, name string, exclude id.ID) error {
	taken, err := svc.store.CourseNameTaken(ctx, name, exclude)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: course %q", errs.ErrDuplicateName, name)
	}
	return nil
}

// hydrate resolves references for rows with one batched lookup per tier.
func (svc *Service) hydrate(ctx context.Context, rows []*Course) ([]*Detail, error) {
	var catIDs, subIDs []id.ID
	for _, c := range rows {
		for _, v := range c.CategoryIDs {
			if !id.Contains(catIDs, v) {
				catIDs = append(catIDs, v)
			}
		}
		for _, v := range c.SubCategoryIDs {
			if !id.Contains(subIDs, v) {
				subIDs = append(subIDs, v)
			}
		}
	}

	cats, err := svc.categories.FindByIDs(ctx, catIDs)
	if err != nil {
		return nil, err
	}
	subs, err := svc.subCategories.FindByIDs(ctx, subIDs)
	if err != nil {
		return nil, err
	}

	catRefs := make(map[id.ID]category.Ref, len(cats))
	for _, c := range cats {
		catRefs[c.ID] = c.Ref()
	}
	subRefs := make(map[id.ID]subcategory.Ref, len(subs))
	for _, sc := range subs {
		subRefs[sc.ID] = sc.Ref()
	}

	out := make([]*Detail, len(rows))
	for i, c := range rows {
		d := &Detail{
			Course:        c,
			Categories:    make([]category.Ref, 0, len(c.CategoryIDs)),
			SubCategories: make([]subcategory.Ref, 0, len(c.SubCategoryIDs)),
		}
		for _, v := range c.CategoryIDs {
			if ref, ok := catRefs[v]; ok {
				d.Categories = append(d.Categories, ref)
			}
		}
		for _, v := range c.SubCategoryIDs {
			if ref, ok := subRefs[v]; ok {
				d.SubCategories = append(d.SubCategories, ref)
			}
		}
		out[i] = d
	}
	return out, nil
}
