// Package memory provides an in-memory Store implementation for unit testing.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/xraph/syllabus"
	"github.com/xraph/syllabus/category"
	"github.com/xraph/syllabus/course"
	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/query"
	syllabusstore "github.com/xraph/syllabus/store"
	"github.com/xraph/syllabus/subcategory"
)

// compile-time interface check.
var _ syllabusstore.Store = (*Store)(nil)

// Store is an in-memory implementation of store.Store for testing.
//
// Records are copied on the way in and on the way out, so callers never
// share memory with the store. Name uniqueness among active categories and
// courses is enforced on write, like the unique indexes of the database
// backends.
type Store struct {
	mu sync.RWMutex

	categories    map[string]*category.Category       // keyed by ID string
	subCategories map[string]*subcategory.SubCategory // keyed by ID string
	courses       map[string]*course.Course           // keyed by ID string

	closed bool
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		categories:    make(map[string]*category.Category),
		subCategories: make(map[string]*subcategory.SubCategory),
		courses:       make(map[string]*course.Course),
	}
}

// ──────────────────────────────────────────────────
// Lifecycle
// ──────────────────────────────────────────────────

// Migrate is a no-op for the in-memory store.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping is a no-op for the in-memory store.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return syllabus.ErrStoreClosed
	}
	return nil
}

// Close marks the store as closed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// ──────────────────────────────────────────────────
// category.Store
// ──────────────────────────────────────────────────

// CreateCategory persists a new category.
func (s *Store) CreateCategory(_ context.Context, c *category.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.categoryNameTakenLocked(c.Name, c.ID) {
		return syllabus.ErrDuplicateName
	}
	s.categories[c.ID.String()] = cloneCategory(c)
	return nil
}

// GetCategory returns an active category by ID.
func (s *Store) GetCategory(_ context.Context, catID id.ID) (*category.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[catID.String()]
	if !ok || c.IsDeleted() {
		return nil, syllabus.ErrCategoryNotFound
	}
	return cloneCategory(c), nil
}

// UpdateCategory replaces a stored category.
func (s *Store) UpdateCategory(_ context.Context, c *category.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[c.ID.String()]; !ok {
		return syllabus.ErrCategoryNotFound
	}
	if !c.IsDeleted() && s.categoryNameTakenLocked(c.Name, c.ID) {
		return syllabus.ErrDuplicateName
	}
	s.categories[c.ID.String()] = cloneCategory(c)
	return nil
}

// ListCategories returns one page of active categories matching q.
func (s *Store) ListCategories(_ context.Context, q query.Query) ([]*category.Category, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*category.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if c.IsDeleted() || !q.Matches(c.Name, c.Description) {
			continue
		}
		result = append(result, c)
	}

	sortByCreated(result, func(c *category.Category) (string, int64) { return c.ID.String(), c.CreatedAt.UnixNano() })
	query.Sort(result, q, func(c *category.Category, field string) any {
		switch field {
		case query.FieldName:
			return c.Name
		case query.FieldUpdatedAt:
			return c.UpdatedAt
		default:
			return c.CreatedAt
		}
	})

	total := int64(len(result))
	return cloneAll(query.Window(result, q), cloneCategory), total, nil
}

// CategoryNameTaken reports whether an active category other than exclude
// is named name.
func (s *Store) CategoryNameTaken(_ context.Context, name string, exclude id.ID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categoryNameTakenLocked(name, exclude), nil
}

func (s *Store) categoryNameTakenLocked(name string, exclude id.ID) bool {
	for _, c := range s.categories {
		if c.IsDeleted() || c.ID == exclude {
			continue
		}
		if c.Name == name {
			return true
		}
	}
	return false
}

// FindCategoriesByIDs returns the active categories among ids, in the order
// of ids. Repeated ids are returned once.
func (s *Store) FindCategoriesByIDs(_ context.Context, ids []id.ID) ([]*category.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*category.Category
	seen := make(map[string]bool, len(ids))
	for _, v := range ids {
		key := v.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		if c, ok := s.categories[key]; ok && !c.IsDeleted() {
			result = append(result, cloneCategory(c))
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────────
// subcategory.Store
// ──────────────────────────────────────────────────

// CreateSubCategory persists a new subcategory.
func (s *Store) CreateSubCategory(_ context.Context, sc *subcategory.SubCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subCategories[sc.ID.String()] = cloneSubCategory(sc)
	return nil
}

// GetSubCategory returns an active subcategory by ID.
func (s *Store) GetSubCategory(_ context.Context, scID id.ID) (*subcategory.SubCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.subCategories[scID.String()]
	if !ok || sc.IsDeleted() {
		return nil, syllabus.ErrSubCategoryNotFound
	}
	return cloneSubCategory(sc), nil
}

// UpdateSubCategory replaces a stored subcategory.
func (s *Store) UpdateSubCategory(_ context.Context, sc *subcategory.SubCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subCategories[sc.ID.String()]; !ok {
		return syllabus.ErrSubCategoryNotFound
	}
	s.subCategories[sc.ID.String()] = cloneSubCategory(sc)
	return nil
}

// ListSubCategories returns one page of active subcategories matching q.
func (s *Store) ListSubCategories(_ context.Context, q query.Query) ([]*subcategory.SubCategory, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*subcategory.SubCategory, 0, len(s.subCategories))
	for _, sc := range s.subCategories {
		if sc.IsDeleted() || !q.Matches(sc.Name, sc.Description) {
			continue
		}
		result = append(result, sc)
	}

	sortByCreated(result, func(sc *subcategory.SubCategory) (string, int64) { return sc.ID.String(), sc.CreatedAt.UnixNano() })
	query.Sort(result, q, func(sc *subcategory.SubCategory, field string) any {
		switch field {
		case query.FieldName:
			return sc.Name
		case query.FieldUpdatedAt:
			return sc.UpdatedAt
		default:
			return sc.CreatedAt
		}
	})

	total := int64(len(result))
	return cloneAll(query.Window(result, q), cloneSubCategory), total, nil
}

// FindSubCategoriesByIDs returns the active subcategories among ids, in the
// order of ids. Repeated ids are returned once.
func (s *Store) FindSubCategoriesByIDs(_ context.Context, ids []id.ID) ([]*subcategory.SubCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*subcategory.SubCategory
	seen := make(map[string]bool, len(ids))
	for _, v := range ids {
		key := v.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		if sc, ok := s.subCategories[key]; ok && !sc.IsDeleted() {
			result = append(result, cloneSubCategory(sc))
		}
	}
	return result, nil
}

// FindSubCategoriesByCategory returns the active subcategories of a category.
func (s *Store) FindSubCategoriesByCategory(_ context.Context, catID id.ID) ([]*subcategory.SubCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*subcategory.SubCategory
	for _, sc := range s.subCategories {
		if !sc.IsDeleted() && sc.CategoryID == catID {
			result = append(result, sc)
		}
	}
	sortByCreated(result, func(sc *subcategory.SubCategory) (string, int64) { return sc.ID.String(), sc.CreatedAt.UnixNano() })
	return cloneAll(result, cloneSubCategory), nil
}

// ──────────────────────────────────────────────────
// course.Store
// ──────────────────────────────────────────────────

// CreateCourse persists a new course.
func (s *Store) CreateCourse(_ context.Context, c *course.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.courseNameTakenLocked(c.Name, c.ID) {
		return syllabus.ErrDuplicateName
	}
	s.courses[c.ID.String()] = cloneCourse(c)
	return nil
}

// GetCourse returns an active course by ID.
func (s *Store) GetCourse(_ context.Context, courseID id.ID) (*course.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.courses[courseID.String()]
	if !ok || c.IsDeleted() {
		return nil, syllabus.ErrCourseNotFound
	}
	return cloneCourse(c), nil
}

// UpdateCourse replaces a stored course.
func (s *Store) UpdateCourse(_ context.Context, c *course.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[c.ID.String()]; !ok {
		return syllabus.ErrCourseNotFound
	}
	if !c.IsDeleted() && s.courseNameTakenLocked(c.Name, c.ID) {
		return syllabus.ErrDuplicateName
	}
	s.courses[c.ID.String()] = cloneCourse(c)
	return nil
}

// ListCourses returns one page of active courses matching q.
func (s *Store) ListCourses(_ context.Context, q query.Query) ([]*course.Course, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*course.Course, 0, len(s.courses))
	for _, c := range s.courses {
		if c.IsDeleted() || !q.Matches(c.Name, c.Description) {
			continue
		}
		result = append(result, c)
	}

	sortByCreated(result, func(c *course.Course) (string, int64) { return c.ID.String(), c.CreatedAt.UnixNano() })
	query.Sort(result, q, func(c *course.Course, field string) any {
		switch field {
		case query.FieldName:
			return c.Name
		case query.FieldUpdatedAt:
			return c.UpdatedAt
		case query.FieldDuration:
			return c.Duration
		case query.FieldLevel:
			return string(c.Level)
		default:
			return c.CreatedAt
		}
	})

	total := int64(len(result))
	return cloneAll(query.Window(result, q), cloneCourse), total, nil
}

// CourseNameTaken reports whether an active course other than exclude is
// named name.
func (s *Store) CourseNameTaken(_ context.Context, name string, exclude id.ID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.courseNameTakenLocked(name, exclude), nil
}

func (s *Store) courseNameTakenLocked(name string, exclude id.ID) bool {
	for _, c := range s.courses {
		if c.IsDeleted() || c.ID == exclude {
			continue
		}
		if c.Name == name {
			return true
		}
	}
	return false
}

// FindCoursesByCategory returns the active courses referencing a category.
func (s *Store) FindCoursesByCategory(_ context.Context, catID id.ID) ([]*course.Course, error) {
	return s.findCourses(func(c *course.Course) bool { return id.Contains(c.CategoryIDs, catID) }), nil
}

// FindCoursesBySubCategory returns the active courses referencing a subcategory.
func (s *Store) FindCoursesBySubCategory(_ context.Context, scID id.ID) ([]*course.Course, error) {
	return s.findCourses(func(c *course.Course) bool { return id.Contains(c.SubCategoryIDs, scID) }), nil
}

func (s *Store) findCourses(match func(*course.Course) bool) []*course.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*course.Course
	for _, c := range s.courses {
		if !c.IsDeleted() && match(c) {
			result = append(result, c)
		}
	}
	sortByCreated(result, func(c *course.Course) (string, int64) { return c.ID.String(), c.CreatedAt.UnixNano() })
	return cloneAll(result, cloneCourse)
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

// sortByCreated puts items in creation order, breaking timestamp ties by ID
// so that map iteration order never leaks into results.
func sortByCreated[T any](items []T, key func(T) (string, int64)) {
	sort.SliceStable(items, func(i, j int) bool {
		idI, tsI := key(items[i])
		idJ, tsJ := key(items[j])
		if tsI != tsJ {
			return tsI < tsJ
		}
		return idI < idJ
	})
}

func cloneAll[T any](items []*T, clone func(*T) *T) []*T {
	out := make([]*T, len(items))
	for i, v := range items {
		out[i] = clone(v)
	}
	return out
}

func cloneCategory(c *category.Category) *category.Category {
	cp := *c
	return &cp
}

func cloneSubCategory(sc *subcategory.SubCategory) *subcategory.SubCategory {
	cp := *sc
	return &cp
}

func cloneCourse(c *course.Course) *course.Course {
	cp := *c
	cp.CategoryIDs = append([]id.ID(nil), c.CategoryIDs...)
	cp.SubCategoryIDs = append([]id.ID(nil), c.SubCategoryIDs...)
	return &cp
}
