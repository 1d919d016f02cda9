package redis

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/xraph/grove/kv"

	"github.com/xraph/syllabus/category"
	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/internal/entity"
	"github.com/xraph/syllabus/store/memory"
)

func TestViewKeys(t *testing.T) {
	keys := viewKeys()
	if len(keys) != len(views) {
		t.Fatalf("keys = %d, want %d", len(keys), len(views))
	}
	seen := make(map[string]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate key %q", k)
		}
		seen[k] = true
	}
	if got := viewKey(viewStatistics); got != "syllabus:report:statistics" {
		t.Errorf("viewKey = %q", got)
	}
}

func TestReportCacheDisabledPassesThrough(t *testing.T) {
	ctx := context.Background()
	c := NewReportCache(memory.New(), nil, time.Minute, nil)

	if c.enabled() {
		t.Fatal("cache without kv should be disabled")
	}
	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	now := time.Now().UTC()
	cat := &category.Category{
		Entity:    entity.Entity{CreatedAt: now, UpdatedAt: now},
		Lifecycle: entity.Active(),
		ID:        id.NewCategoryID(),
		Name:      "Programming",
	}
	if err := c.CreateCategory(ctx, cat); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	st, err := c.Statistics(ctx)
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if st.TotalCategories != 1 {
		t.Errorf("TotalCategories = %d, want 1", st.TotalCategories)
	}

	// Reads see the write immediately.
	if err := c.CreateCategory(ctx, &category.Category{
		Entity:    entity.Entity{CreatedAt: now, UpdatedAt: now},
		Lifecycle: entity.Active(),
		ID:        id.NewCategoryID(),
		Name:      "Design",
	}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	counts, err := c.CategoriesWithSubCategoryCount(ctx)
	if err != nil {
		t.Fatalf("CategoriesWithSubCategoryCount: %v", err)
	}
	if len(counts) != 2 {
		t.Errorf("counts = %d, want 2", len(counts))
	}
}

func TestReportCacheZeroTTLDisabled(t *testing.T) {
	c := &ReportCache{Store: memory.New(), ttl: 0}
	if c.enabled() {
		t.Error("zero TTL should disable the cache")
	}
}

func TestAfterWritePassesError(t *testing.T) {
	c := NewReportCache(memory.New(), nil, time.Minute, nil)
	want := context.Canceled
	if err := c.afterWrite(context.Background(), want); err != want {
		t.Errorf("afterWrite = %v, want %v", err, want)
	}
}

func TestReportCacheWithoutRedisClientDisabled(t *testing.T) {
	ctx := context.Background()
	c := &ReportCache{Store: memory.New(), kv: &kv.Store{}, ttl: time.Minute, logger: slog.Default()}
	if c.enabled() {
		t.Fatal("cache without a Redis client should be disabled")
	}
	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, err := c.Statistics(ctx); err != nil {
		t.Fatalf("Statistics: %v", err)
	}
}
