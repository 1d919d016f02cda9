// Package syllabus provides a hierarchical course catalog engine for Go.
//
// Syllabus is a library that manages a three-tier catalog
// (Category → SubCategory → Course) with referential and uniqueness
// invariants, soft deletion, paginated search, and reporting views.
//
// Key features:
//   - Cross-tier consistency checks before every mutation
//   - Name uniqueness scoped to active records
//   - Soft deletion with a one-way Active → Deleted lifecycle
//   - Shared pagination, substring search and single-key sorting
//   - Aggregated reporting views (counts, grouping, duration statistics)
//   - Composable store pattern with multiple backends (Memory, MongoDB, Postgres, SQLite)
//
// Quick start:
//
//	s, err := syllabus.New(
//	    syllabus.WithStore(memory.New()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	web, _ := s.Categories().Create(ctx, category.CreateInput{Name: "Web Development"})
//	js, _ := s.SubCategories().Create(ctx, subcategory.CreateInput{Name: "JavaScript", CategoryID: web.ID})
//	_, err = s.Courses().Create(ctx, course.CreateInput{
//	    Name:           "Full Stack",
//	    Duration:       120,
//	    Level:          course.LevelIntermediate,
//	    CategoryIDs:    []id.ID{web.ID},
//	    SubCategoryIDs: []id.ID{js.ID},
//	})
package syllabus
