package redis

// Key prefix for cached reporting views.
const prefixReport = "syllabus:report:"

// Reporting views held in the cache.
const (
	viewCategoryCounts     = "categories-with-subcategory-count"
	viewSubCategoriesByCat = "subcategories-by-category"
	viewCoursesByLevel     = "courses-by-level"
	viewStatistics         = "statistics"
	viewCourseDetails      = "course-details"
)

// views lists every cached view, so a write can drop them all at once.
var views = []string{
	viewCategoryCounts,
	viewSubCategoriesByCat,
	viewCoursesByLevel,
	viewStatistics,
	viewCourseDetails,
}

// viewKey returns the cache key for a reporting view.
func viewKey(view string) string {
	return prefixReport + view
}

// viewKeys returns the cache keys of every view.
func viewKeys() []string {
	keys := make([]string, len(views))
	for i, v := range views {
		keys[i] = viewKey(v)
	}
	return keys
}
