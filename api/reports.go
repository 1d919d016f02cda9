package api

import (
	"context"
	"net/http"
)

func (h *Handler) reportSubCategoriesByCategory(w http.ResponseWriter, r *http.Request) {
	serveReport(h, w, r, "SubCategories grouped by category retrieved successfully", h.reports.SubCategoriesByCategory)
}

func (h *Handler) reportCoursesByLevel(w http.ResponseWriter, r *http.Request) {
	serveReport(h, w, r, "Courses grouped by level retrieved successfully", h.reports.CoursesByLevel)
}

func (h *Handler) reportStatistics(w http.ResponseWriter, r *http.Request) {
	serveReport(h, w, r, "Statistics retrieved successfully", h.reports.Statistics)
}

func (h *Handler) reportCourseDetails(w http.ResponseWriter, r *http.Request) {
	serveReport(h, w, r, "Courses with details retrieved successfully", h.reports.CoursesWithDetails)
}

func serveReport[T any](h *Handler, w http.ResponseWriter, r *http.Request, message string, view func(context.Context) (T, error)) {
	data, err := view(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, message, data)
}
