package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Syllabus store.
// It can be registered with the grove extension for orchestrated migration
// management (locking, version tracking, rollback support).
var Migrations = migrate.NewGroup("syllabus")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_syllabus_categories",
			Version: "20250101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS syllabus_categories (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    is_deleted  BOOLEAN NOT NULL DEFAULT FALSE,
    deleted_at  TIMESTAMPTZ,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_syllabus_categories_active_name
    ON syllabus_categories (name) WHERE is_deleted = FALSE;
CREATE INDEX IF NOT EXISTS idx_syllabus_categories_created ON syllabus_categories (created_at);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS syllabus_categories`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_syllabus_subcategories",
			Version: "20250101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS syllabus_subcategories (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category_id TEXT NOT NULL,
    is_deleted  BOOLEAN NOT NULL DEFAULT FALSE,
    deleted_at  TIMESTAMPTZ,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_syllabus_subcategories_category
    ON syllabus_subcategories (category_id, is_deleted);
CREATE INDEX IF NOT EXISTS idx_syllabus_subcategories_created ON syllabus_subcategories (created_at);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS syllabus_subcategories`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_syllabus_courses",
			Version: "20250101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS syllabus_courses (
    id              TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    description     TEXT NOT NULL DEFAULT '',
    duration        DOUBLE PRECISION NOT NULL CHECK (duration > 0),
    level           TEXT NOT NULL,
    category_ids    TEXT[] NOT NULL DEFAULT '{}',
    subcategory_ids TEXT[] NOT NULL DEFAULT '{}',
    is_deleted      BOOLEAN NOT NULL DEFAULT FALSE,
    deleted_at      TIMESTAMPTZ,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_syllabus_courses_active_name
    ON syllabus_courses (name) WHERE is_deleted = FALSE;
CREATE INDEX IF NOT EXISTS idx_syllabus_courses_categories ON syllabus_courses USING GIN (category_ids);
CREATE INDEX IF NOT EXISTS idx_syllabus_courses_subcategories ON syllabus_courses USING GIN (subcategory_ids);
CREATE INDEX IF NOT EXISTS idx_syllabus_courses_level ON syllabus_courses (level);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS syllabus_courses`)
				return err
			},
		},
	)
}
