package api

import (
	"net/http"

	"github.com/xraph/syllabus/category"
	"github.com/xraph/syllabus/id"
)

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var in category.CreateInput
	if !h.decode(w, r, &in) {
		return
	}

	c, err := h.categories.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Category created successfully", c)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	params, bad := listParams(r)
	if bad != nil {
		writeError(w, http.StatusBadRequest, "invalid pagination parameters", bad)
		return
	}

	page, err := h.categories.List(r.Context(), params)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Categories retrieved successfully", page)
}

func (h *Handler) categoriesWithSubCategoryCount(w http.ResponseWriter, r *http.Request) {
	rows, err := h.categories.WithSubCategoryCount(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Categories with subcategory count retrieved successfully", rows)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	catID, ok := pathID(w, r, "id", id.PrefixCategory)
	if !ok {
		return
	}

	c, err := h.categories.Get(r.Context(), catID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Category retrieved successfully", c)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	catID, ok := pathID(w, r, "id", id.PrefixCategory)
	if !ok {
		return
	}
	var in category.UpdateInput
	if !h.decode(w, r, &in) {
		return
	}

	c, err := h.categories.Update(r.Context(), catID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Category updated successfully", c)
}

func (h *Handler) removeCategory(w http.ResponseWriter, r *http.Request) {
	catID, ok := pathID(w, r, "id", id.PrefixCategory)
	if !ok {
		return
	}

	c, err := h.categories.Remove(r.Context(), catID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Category deleted successfully", c)
}
