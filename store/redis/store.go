// Package redis caches Syllabus reporting views in Redis via Grove KV.
//
// ReportCache wraps any store.Store. The five reporting views are read from
// Redis while fresh and recomputed from the wrapped store otherwise; every
// successful write through the cache drops all cached views. Cache failures
// are logged and never fail a request.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xraph/grove/kv"
	"github.com/xraph/grove/kv/drivers/redisdriver"

	"github.com/xraph/syllabus/category"
	"github.com/xraph/syllabus/course"
	"github.com/xraph/syllabus/report"
	syllabusstore "github.com/xraph/syllabus/store"
	"github.com/xraph/syllabus/subcategory"
)

// compile-time interface check
var _ syllabusstore.Store = (*ReportCache)(nil)

// ReportCache implements store.Store by delegating to another store and
// caching its reporting views.
type ReportCache struct {
	syllabusstore.Store

	kv     *kv.Store
	rdb    goredis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewReportCache wraps next with a view cache held in kvs. Cached views
// expire after ttl; a ttl of zero or less disables caching.
func NewReportCache(next syllabusstore.Store, kvs *kv.Store, ttl time.Duration, logger *slog.Logger) *ReportCache {
	if logger == nil {
		logger = slog.Default()
	}
	c := &ReportCache{
		Store:  next,
		kv:     kvs,
		ttl:    ttl,
		logger: logger,
	}
	if kvs != nil {
		c.rdb = redisdriver.UnwrapClient(kvs)
	}
	return c
}

// Ping checks both the wrapped store and Redis.
func (c *ReportCache) Ping(ctx context.Context) error {
	if err := c.Store.Ping(ctx); err != nil {
		return err
	}
	if c.kv == nil {
		return nil
	}
	return c.kv.Ping(ctx)
}

// Close closes the KV store and the wrapped store.
func (c *ReportCache) Close() error {
	var kvErr error
	if c.kv != nil {
		kvErr = c.kv.Close()
	}
	return errors.Join(kvErr, c.Store.Close())
}

// Invalidate drops every cached view.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	if err := c.rdb.Del(ctx, viewKeys()...).Err(); err != nil {
		return fmt.Errorf("syllabus/redis: invalidate views: %w", err)
	}
	return nil
}

// ──────────────────────────────────────────────────
// Writes
// ──────────────────────────────────────────────────

func (c *ReportCache) CreateCategory(ctx context.Context, cat *category.Category) error {
	return c.afterWrite(ctx, c.Store.CreateCategory(ctx, cat))
}

func (c *ReportCache) UpdateCategory(ctx context.Context, cat *category.Category) error {
	return c.afterWrite(ctx, c.Store.UpdateCategory(ctx, cat))
}

func (c *ReportCache) CreateSubCategory(ctx context.Context, sc *subcategory.SubCategory) error {
	return c.afterWrite(ctx, c.Store.CreateSubCategory(ctx, sc))
}

func (c *ReportCache) UpdateSubCategory(ctx context.Context, sc *subcategory.SubCategory) error {
	return c.afterWrite(ctx, c.Store.UpdateSubCategory(ctx, sc))
}

func (c *ReportCache) CreateCourse(ctx context.Context, co *course.Course) error {
	return c.afterWrite(ctx, c.Store.CreateCourse(ctx, co))
}

func (c *ReportCache) UpdateCourse(ctx context.Context, co *course.Course) error {
	return c.afterWrite(ctx, c.Store.UpdateCourse(ctx, co))
}

// afterWrite drops the cached views when the write succeeded and passes the
// write's error through unchanged.
func (c *ReportCache) afterWrite(ctx context.Context, err error) error {
	if err != nil {
		return err
	}
	if invErr := c.Invalidate(ctx); invErr != nil {
		c.logger.Warn("report cache invalidation failed", "error", invErr)
	}
	return nil
}

// ──────────────────────────────────────────────────
// report.Store
// ──────────────────────────────────────────────────

func (c *ReportCache) CategoriesWithSubCategoryCount(ctx context.Context) ([]report.CategorySubCategoryCount, error) {
	return cached(ctx, c, viewCategoryCounts, c.Store.CategoriesWithSubCategoryCount)
}

func (c *ReportCache) SubCategoriesByCategory(ctx context.Context) ([]report.CategoryGroup, error) {
	return cached(ctx, c, viewSubCategoriesByCat, c.Store.SubCategoriesByCategory)
}

func (c *ReportCache) CoursesByLevel(ctx context.Context) ([]report.LevelGroup, error) {
	return cached(ctx, c, viewCoursesByLevel, c.Store.CoursesByLevel)
}

func (c *ReportCache) Statistics(ctx context.Context) (*report.Statistics, error) {
	return cached(ctx, c, viewStatistics, c.Store.Statistics)
}

func (c *ReportCache) CoursesWithDetails(ctx context.Context) ([]report.CourseDetail, error) {
	return cached(ctx, c, viewCourseDetails, c.Store.CoursesWithDetails)
}

// cached serves view from Redis when present and otherwise loads it and
// stores the result for the cache TTL.
func cached[T any](ctx context.Context, c *ReportCache, view string, load func(context.Context) (T, error)) (T, error) {
	if !c.enabled() {
		return load(ctx)
	}

	key := viewKey(view)
	var out T
	if err := c.getView(ctx, key, &out); err == nil {
		return out, nil
	} else if !isNotFound(err) && !isRedisNil(err) {
		c.logger.Warn("report cache read failed", "view", view, "error", err)
	}

	out, err := load(ctx)
	if err != nil {
		return out, err
	}
	if err := c.setView(ctx, key, out); err != nil {
		c.logger.Warn("report cache write failed", "view", view, "error", err)
	}
	return out, nil
}

// enabled reports whether views are cached. A kv store without a Redis
// client underneath leaves the cache off.
func (c *ReportCache) enabled() bool {
	return c.kv != nil && c.rdb != nil && c.ttl > 0
}

// getView retrieves and decodes a cached view.
func (c *ReportCache) getView(ctx context.Context, key string, dest any) error {
	raw, err := c.kv.GetRaw(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// setView encodes a view and stores it with the cache TTL.
func (c *ReportCache) setView(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("syllabus/redis: marshal view: %w", err)
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

// isNotFound checks if an error is a KV not-found sentinel.
func isNotFound(err error) bool {
	return errors.Is(err, kv.ErrNotFound)
}

// isRedisNil checks if an error is a Redis nil (key not found).
func isRedisNil(err error) bool {
	return errors.Is(err, goredis.Nil)
}
