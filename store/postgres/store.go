package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	"github.com/xraph/grove/migrate"

	"github.com/xraph/syllabus"
	"github.com/xraph/syllabus/category"
	"github.com/xraph/syllabus/course"
	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/query"
	"github.com/xraph/syllabus/report"
	syllabusstore "github.com/xraph/syllabus/store"
	"github.com/xraph/syllabus/subcategory"
)

// compile-time interface check
var _ syllabusstore.Store = (*Store)(nil)

// Store implements store.Store using PostgreSQL via Grove ORM.
type Store struct {
	db *grove.DB
	pg *pgdriver.PgDB
}

// New creates a new PostgreSQL store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db: db,
		pg: pgdriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.pg)
	if err != nil {
		return fmt.Errorf("syllabus/postgres: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("%w: postgres: %w", syllabus.ErrMigrationFailed, err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Category Store ====================

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	_, err := s.pg.NewInsert(toCategoryModel(c)).Exec(ctx)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: category %q", syllabus.ErrDuplicateName, c.Name)
	}
	return err
}

func (s *Store) GetCategory(ctx context.Context, catID id.ID) (*category.Category, error) {
	m := new(categoryModel)
	err := s.pg.NewSelect(m).
		Where("id = $1 AND is_deleted = FALSE", catID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, syllabus.ErrCategoryNotFound
		}
		return nil, err
	}
	return fromCategoryModel(m)
}

func (s *Store) UpdateCategory(ctx context.Context, c *category.Category) error {
	res, err := s.pg.NewUpdate(toCategoryModel(c)).
		WherePK().
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category %q", syllabus.ErrDuplicateName, c.Name)
		}
		return err
	}
	return requireRow(res, syllabus.ErrCategoryNotFound)
}

func (s *Store) ListCategories(ctx context.Context, q query.Query) ([]*category.Category, int64, error) {
	where, args := activeWhere(q)

	total, err := s.pg.NewSelect((*categoryModel)(nil)).
		Where(where, args...).
		Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	var models []categoryModel
	if err := s.pg.NewSelect(&models).
		Where(where, args...).
		OrderExpr(orderBy(q)).
		Offset(q.Offset()).
		Limit(q.Limit).
		Scan(ctx); err != nil {
		return nil, 0, err
	}

	result, err := convertAll(models, fromCategoryModel)
	return result, total, err
}

func (s *Store) CategoryNameTaken(ctx context.Context, name string, exclude id.ID) (bool, error) {
	where, args := nameWhere(name, exclude)
	count, err := s.pg.NewSelect((*categoryModel)(nil)).
		Where(where, args...).
		Count(ctx)
	return count > 0, err
}

func (s *Store) FindCategoriesByIDs(ctx context.Context, ids []id.ID) ([]*category.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []categoryModel
	if err := s.pg.NewSelect(&models).
		Where("id = ANY($1) AND is_deleted = FALSE", id.Strings(ids)).
		Scan(ctx); err != nil {
		return nil, err
	}

	found := make(map[string]*category.Category, len(models))
	for i := range models {
		c, err := fromCategoryModel(&models[i])
		if err != nil {
			return nil, err
		}
		found[models[i].ID] = c
	}
	return inOrder(ids, found), nil
}

// ==================== SubCategory Store ====================

func (s *Store) CreateSubCategory(ctx context.Context, sc *subcategory.SubCategory) error {
	_, err := s.pg.NewInsert(toSubCategoryModel(sc)).Exec(ctx)
	return err
}

func (s *Store) GetSubCategory(ctx context.Context, scID id.ID) (*subcategory.SubCategory, error) {
	m := new(subCategoryModel)
	err := s.pg.NewSelect(m).
		Where("id = $1 AND is_deleted = FALSE", scID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, syllabus.ErrSubCategoryNotFound
		}
		return nil, err
	}
	return fromSubCategoryModel(m)
}

func (s *Store) UpdateSubCategory(ctx context.Context, sc *subcategory.SubCategory) error {
	res, err := s.pg.NewUpdate(toSubCategoryModel(sc)).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, syllabus.ErrSubCategoryNotFound)
}

func (s *Store) ListSubCategories(ctx context.Context, q query.Query) ([]*subcategory.SubCategory, int64, error) {
	where, args := activeWhere(q)

	total, err := s.pg.NewSelect((*subCategoryModel)(nil)).
		Where(where, args...).
		Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	var models []subCategoryModel
	if err := s.pg.NewSelect(&models).
		Where(where, args...).
		OrderExpr(orderBy(q)).
		Offset(q.Offset()).
		Limit(q.Limit).
		Scan(ctx); err != nil {
		return nil, 0, err
	}

	result, err := convertAll(models, fromSubCategoryModel)
	return result, total, err
}

func (s *Store) FindSubCategoriesByIDs(ctx context.Context, ids []id.ID) ([]*subcategory.SubCategory, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []subCategoryModel
	if err := s.pg.NewSelect(&models).
		Where("id = ANY($1) AND is_deleted = FALSE", id.Strings(ids)).
		Scan(ctx); err != nil {
		return nil, err
	}

	found := make(map[string]*subcategory.SubCategory, len(models))
	for i := range models {
		sc, err := fromSubCategoryModel(&models[i])
		if err != nil {
			return nil, err
		}
		found[models[i].ID] = sc
	}
	return inOrder(ids, found), nil
}

func (s *Store) FindSubCategoriesByCategory(ctx context.Context, catID id.ID) ([]*subcategory.SubCategory, error) {
	var models []subCategoryModel
	if err := s.pg.NewSelect(&models).
		Where("category_id = $1 AND is_deleted = FALSE", catID.String()).
		OrderExpr("created_at ASC, id ASC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return convertAll(models, fromSubCategoryModel)
}

// ==================== Course Store ====================

func (s *Store) CreateCourse(ctx context.Context, c *course.Course) error {
	_, err := s.pg.NewInsert(toCourseModel(c)).Exec(ctx)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: course %q", syllabus.ErrDuplicateName, c.Name)
	}
	return err
}

func (s *Store) GetCourse(ctx context.Context, courseID id.ID) (*course.Course, error) {
	m := new(courseModel)
	err := s.pg.NewSelect(m).
		Where("id = $1 AND is_deleted = FALSE", courseID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, syllabus.ErrCourseNotFound
		}
		return nil, err
	}
	return fromCourseModel(m)
}

func (s *Store) UpdateCourse(ctx context.Context, c *course.Course) error {
	res, err := s.pg.NewUpdate(toCourseModel(c)).
		WherePK().
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: course %q", syllabus.ErrDuplicateName, c.Name)
		}
		return err
	}
	return requireRow(res, syllabus.ErrCourseNotFound)
}

func (s *Store) ListCourses(ctx context.Context, q query.Query) ([]*course.Course, int64, error) {
	where, args := activeWhere(q)

	total, err := s.pg.NewSelect((*courseModel)(nil)).
		Where(where, args...).
		Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	var models []courseModel
	if err := s.pg.NewSelect(&models).
		Where(where, args...).
		OrderExpr(orderBy(q)).
		Offset(q.Offset()).
		Limit(q.Limit).
		Scan(ctx); err != nil {
		return nil, 0, err
	}

	result, err := convertAll(models, fromCourseModel)
	return result, total, err
}

func (s *Store) CourseNameTaken(ctx context.Context, name string, exclude id.ID) (bool, error) {
	where, args := nameWhere(name, exclude)
	count, err := s.pg.NewSelect((*courseModel)(nil)).
		Where(where, args...).
		Count(ctx)
	return count > 0, err
}

func (s *Store) FindCoursesByCategory(ctx context.Context, catID id.ID) ([]*course.Course, error) {
	return s.findCourses(ctx, "$1 = ANY(category_ids) AND is_deleted = FALSE", catID.String())
}

func (s *Store) FindCoursesBySubCategory(ctx context.Context, scID id.ID) ([]*course.Course, error) {
	return s.findCourses(ctx, "$1 = ANY(subcategory_ids) AND is_deleted = FALSE", scID.String())
}

func (s *Store) findCourses(ctx context.Context, where string, args ...any) ([]*course.Course, error) {
	var models []courseModel
	if err := s.pg.NewSelect(&models).
		Where(where, args...).
		OrderExpr("created_at ASC, id ASC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return convertAll(models, fromCourseModel)
}

// ==================== Report Store ====================

func (s *Store) CategoriesWithSubCategoryCount(ctx context.Context) ([]report.CategorySubCategoryCount, error) {
	var rows []categoryCountRow
	if err := s.pg.NewRaw(`
		SELECT c.id, c.name, c.description, c.created_at, c.updated_at,
		       COUNT(sc.id) AS subcategory_count
		FROM syllabus_categories c
		LEFT JOIN syllabus_subcategories sc
		       ON sc.category_id = c.id AND sc.is_deleted = FALSE
		WHERE c.is_deleted = FALSE
		GROUP BY c.id
		ORDER BY c.created_at DESC, c.id ASC
	`).Scan(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]report.CategorySubCategoryCount, 0, len(rows))
	for _, r := range rows {
		catID, err := id.ParseCategoryID(r.ID)
		if err != nil {
			return nil, fmt.Errorf("parse category id %q: %w", r.ID, err)
		}
		out = append(out, report.CategorySubCategoryCount{
			ID:               catID,
			Name:             r.Name,
			Description:      r.Description,
			SubCategoryCount: r.SubCategoryCount,
			CreatedAt:        r.CreatedAt,
			UpdatedAt:        r.UpdatedAt,
		})
	}
	return out, nil
}

func (s *Store) SubCategoriesByCategory(ctx context.Context) ([]report.CategoryGroup, error) {
	// The inner join drops subcategories whose parent row is gone; a
	// soft-deleted parent still joins.
	var rows []subCategoryRow
	if err := s.pg.NewRaw(`
		SELECT c.id AS category_id, c.name AS category_name,
		       sc.id, sc.name, sc.description
		FROM syllabus_subcategories sc
		JOIN syllabus_categories c ON c.id = sc.category_id
		WHERE sc.is_deleted = FALSE
		ORDER BY sc.created_at ASC, sc.id ASC
	`).Scan(ctx, &rows); err != nil {
		return nil, err
	}

	flat := make([]report.SubCategoryRow, 0, len(rows))
	for _, r := range rows {
		catID, err := id.ParseCategoryID(r.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("parse category id %q: %w", r.CategoryID, err)
		}
		scID, err := id.ParseSubCategoryID(r.ID)
		if err != nil {
			return nil, fmt.Errorf("parse subcategory id %q: %w", r.ID, err)
		}
		flat = append(flat, report.SubCategoryRow{
			CategoryID:   catID,
			CategoryName: r.CategoryName,
			SubCategory:  report.SubCategorySummary{ID: scID, Name: r.Name, Description: r.Description},
		})
	}
	return report.GroupByCategory(flat), nil
}

func (s *Store) CoursesByLevel(ctx context.Context) ([]report.LevelGroup, error) {
	var models []courseModel
	if err := s.pg.NewSelect(&models).
		Where("is_deleted = FALSE").
		OrderExpr("created_at ASC, id ASC").
		Scan(ctx); err != nil {
		return nil, err
	}

	rows := make([]report.LevelRow, 0, len(models))
	for i := range models {
		c, err := fromCourseModel(&models[i])
		if err != nil {
			return nil, err
		}
		rows = append(rows, report.LevelRow{
			Level: string(c.Level),
			Course: report.CourseSummary{
				ID:          c.ID,
				Name:        c.Name,
				Description: c.Description,
				Duration:    c.Duration,
			},
		})
	}
	return report.GroupByLevel(rows), nil
}

func (s *Store) Statistics(ctx context.Context) (*report.Statistics, error) {
	var row statisticsRow
	if err := s.pg.NewRaw(`
		SELECT (SELECT COUNT(*) FROM syllabus_categories WHERE is_deleted = FALSE) AS total_categories,
		       COUNT(*) AS total_courses,
		       COALESCE(AVG(duration), 0) AS average_duration,
		       COALESCE(MIN(duration), 0) AS min_duration,
		       COALESCE(MAX(duration), 0) AS max_duration
		FROM syllabus_courses
		WHERE is_deleted = FALSE
	`).Scan(ctx, &row); err != nil {
		return nil, err
	}

	return &report.Statistics{
		TotalCategories: row.TotalCategories,
		TotalCourses:    row.TotalCourses,
		AverageDuration: row.AverageDuration,
		MinDuration:     row.MinDuration,
		MaxDuration:     row.MaxDuration,
	}, nil
}

func (s *Store) CoursesWithDetails(ctx context.Context) ([]report.CourseDetail, error) {
	// Reference counts match stored rows regardless of their lifecycle.
	var rows []courseDetailRow
	if err := s.pg.NewRaw(`
		SELECT co.id, co.name, co.description, co.duration, co.level,
		       co.category_ids, co.subcategory_ids, co.created_at, co.updated_at,
		       (SELECT COUNT(*) FROM syllabus_categories c
		         WHERE c.id = ANY(co.category_ids)) AS category_count,
		       (SELECT COUNT(*) FROM syllabus_subcategories sc
		         WHERE sc.id = ANY(co.subcategory_ids)) AS subcategory_count
		FROM syllabus_courses co
		WHERE co.is_deleted = FALSE
		ORDER BY co.created_at ASC, co.id ASC
	`).Scan(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]report.CourseDetail, 0, len(rows))
	for i := range rows {
		c, err := fromCourseModel(rows[i].model())
		if err != nil {
			return nil, err
		}
		out = append(out, report.CourseDetail{
			ID:               c.ID,
			Name:             c.Name,
			Description:      c.Description,
			Duration:         c.Duration,
			Level:            string(c.Level),
			CategoryIDs:      c.CategoryIDs,
			SubCategoryIDs:   c.SubCategoryIDs,
			CategoryCount:    rows[i].CategoryCount,
			SubCategoryCount: rows[i].SubCategoryCount,
			CreatedAt:        c.CreatedAt,
			UpdatedAt:        c.UpdatedAt,
		})
	}
	return out, nil
}

// ==================== Helpers ====================

// activeWhere builds the filter for active rows matching q's search term.
func activeWhere(q query.Query) (string, []any) {
	if !q.HasSearch() {
		return "is_deleted = FALSE", nil
	}
	return "is_deleted = FALSE AND (name ILIKE $1 OR description ILIKE $1)", []any{likePattern(q.Search)}
}

// nameWhere matches active rows named name, other than exclude.
func nameWhere(name string, exclude id.ID) (string, []any) {
	if exclude.IsNil() {
		return "name = $1 AND is_deleted = FALSE", []any{name}
	}
	return "name = $1 AND is_deleted = FALSE AND id <> $2", []any{name, exclude.String()}
}

// orderBy sorts by q's column, then by creation order. The column comes from
// a fixed whitelist.
func orderBy(q query.Query) string {
	dir := "ASC"
	if q.Descending() {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, created_at ASC, id ASC", q.SortColumn(), dir)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns a search term into a substring pattern with LIKE
// wildcards escaped.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// inOrder returns the records of found keyed by ids, in the order of ids and
// without repeats.
func inOrder[T any](ids []id.ID, found map[string]T) []T {
	out := make([]T, 0, len(found))
	seen := make(map[string]bool, len(ids))
	for _, v := range ids {
		key := v.String()
		rec, ok := found[key]
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rec)
	}
	return out
}

// rowsAffecter is the part of an exec result requireRow reads.
type rowsAffecter interface {
	RowsAffected() (int64, error)
}

// requireRow returns notFound when res touched no rows.
func requireRow(res rowsAffecter, notFound error) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

// isUniqueViolation reports whether err is a unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
