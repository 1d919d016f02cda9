package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Syllabus store (SQLite).
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
    is_deleted  INTEGER NOT NULL DEFAULT 0,
    deleted_at  TEXT,
    created_at  TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_syllabus_categories_active_name
    ON syllabus_categories (name) WHERE is_deleted = 0;
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
    is_deleted  INTEGER NOT NULL DEFAULT 0,
    deleted_at  TEXT,
    created_at  TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_syllabus_subcategories_category
    ON syllabus_subcategories (category_id, is_deleted);
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
    duration        REAL NOT NULL CHECK (duration > 0),
    level           TEXT NOT NULL,
    category_ids    TEXT NOT NULL DEFAULT '[]',
    subcategory_ids TEXT NOT NULL DEFAULT '[]',
    is_deleted      INTEGER NOT NULL DEFAULT 0,
    deleted_at      TEXT,
    created_at      TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at      TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_syllabus_courses_active_name
    ON syllabus_courses (name) WHERE is_deleted = 0;
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
