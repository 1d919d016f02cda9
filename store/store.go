// Package store defines the composite Store interface for all Syllabus persistence.
//
// Each catalog tier defines its own store interface, and the aggregate Store
// composes them together with the reporting views.
package store

import (
	"context"

	"github.com/xraph/syllabus/category"
	"github.com/xraph/syllabus/course"
	"github.com/xraph/syllabus/report"
	"github.com/xraph/syllabus/subcategory"
)

// Store is the aggregate persistence interface.
type Store interface {
	category.Store
	subcategory.Store
	course.Store
	report.Store

	// Migrate runs all schema migrations.
	Migrate(ctx context.Context) error

	// Ping checks database connectivity.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
