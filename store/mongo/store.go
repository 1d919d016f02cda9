package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/query"
	"github.com/xraph/syllabus/store"
)

// Collection name constants.
const (
	colCategories    = "syllabus_categories"
	colSubCategories = "syllabus_subcategories"
	colCourses       = "syllabus_courses"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all syllabus collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}

		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("syllabus/mongo: migrate %s indexes: %w", col, err)
		}
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

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// migrationIndexes returns the index definitions for all syllabus collections.
// Names are unique among active records only, so a soft-deleted name can be
// reused.
func migrationIndexes() map[string][]mongo.IndexModel {
	activeUnique := func() *options.IndexOptionsBuilder {
		return options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"is_deleted": false})
	}

	return map[string][]mongo.IndexModel{
		colCategories: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: activeUnique()},
			{Keys: bson.D{{Key: "is_deleted", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		colSubCategories: {
			{Keys: bson.D{{Key: "category_id", Value: 1}, {Key: "is_deleted", Value: 1}}},
			{Keys: bson.D{{Key: "is_deleted", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		colCourses: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: activeUnique()},
			{Keys: bson.D{{Key: "category_ids", Value: 1}}},
			{Keys: bson.D{{Key: "subcategory_ids", Value: 1}}},
			{Keys: bson.D{{Key: "level", Value: 1}, {Key: "is_deleted", Value: 1}}},
		},
	}
}

// ──────────────────────────────────────────────────
// Query helpers
// ──────────────────────────────────────────────────

// activeFilter returns the base filter for active records matching q.
func activeFilter(q query.Query) bson.M {
	filter := bson.M{"is_deleted": false}
	if q.HasSearch() {
		pattern := bson.M{"$regex": regexp.QuoteMeta(q.Search), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}
	return filter
}

// sortFor orders by the requested column, then by creation order.
func sortFor(q query.Query) bson.D {
	dir := 1
	if q.Descending() {
		dir = -1
	}
	return bson.D{
		{Key: q.SortColumn(), Value: dir},
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	}
}

// creationOrder is the sort used by unpaginated lookups.
var creationOrder = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

// nameFilter matches active records named name, other than exclude.
func nameFilter(name string, exclude id.ID) bson.M {
	filter := bson.M{"name": name, "is_deleted": false}
	if !exclude.IsNil() {
		filter["_id"] = bson.M{"$ne": exclude.String()}
	}
	return filter
}

// idsFilter matches the active records among ids.
func idsFilter(ids []id.ID) bson.M {
	return bson.M{"_id": bson.M{"$in": id.Strings(ids)}, "is_deleted": false}
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

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
