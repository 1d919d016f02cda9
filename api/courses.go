package api

import (
	"net/http"

	"github.com/xraph/syllabus/course"
	"github.com/xraph/syllabus/id"
)

func (h *Handler) createCourse(w http.ResponseWriter, r *http.Request) {
	var in course.CreateInput
	if !h.decode(w, r, &in) {
		return
	}

	c, err := h.courses.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Course created successfully", c)
}

func (h *Handler) listCourses(w http.ResponseWriter, r *http.Request) {
	params, bad := listParams(r)
	if bad != nil {
		writeError(w, http.StatusBadRequest, "invalid pagination parameters", bad)
		return
	}

	page, err := h.courses.List(r.Context(), params)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Courses retrieved successfully", page)
}

func (h *Handler) coursesByCategory(w http.ResponseWriter, r *http.Request) {
	catID, ok := pathID(w, r, "categoryId", id.PrefixCategory)
	if !ok {
		return
	}

	rows, err := h.courses.FindByCategory(r.Context(), catID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Courses retrieved successfully", rows)
}

func (h *Handler) coursesBySubCategory(w http.ResponseWriter, r *http.Request) {
	scID, ok := pathID(w, r, "subCategoryId", id.PrefixSubCategory)
	if !ok {
		return
	}

	rows, err := h.courses.FindBySubCategory(r.Context(), scID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Courses retrieved successfully", rows)
}

func (h *Handler) getCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r, "id", id.PrefixCourse)
	if !ok {
		return
	}

	c, err := h.courses.Get(r.Context(), courseID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Course retrieved successfully", c)
}

func (h *Handler) updateCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r, "id", id.PrefixCourse)
	if !ok {
		return
	}
	var in course.UpdateInput
	if !h.decode(w, r, &in) {
		return
	}

	c, err := h.courses.Update(r.Context(), courseID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Course updated successfully", c)
}

func (h *Handler) removeCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r, "id", id.PrefixCourse)
	if !ok {
		return
	}

	c, err := h.courses.Remove(r.Context(), courseID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Course deleted successfully", c)
}
