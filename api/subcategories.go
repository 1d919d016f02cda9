package api

import (
	"net/http"

	"github.com/xraph/syllabus/id"
	"github.com/xraph/syllabus/subcategory"
)

func (h *Handler) createSubCategory(w http.ResponseWriter, r *http.Request) {
	var in subcategory.CreateInput
	if !h.decode(w, r, &in) {
		return
	}

	sc, err := h.subCategories.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "SubCategory created successfully", sc)
}

func (h *Handler) listSubCategories(w http.ResponseWriter, r *http.Request) {
	params, bad := listParams(r)
	if bad != nil {
		writeError(w, http.StatusBadRequest, "invalid pagination parameters", bad)
		return
	}

	page, err := h.subCategories.List(r.Context(), params)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "SubCategories retrieved successfully", page)
}

func (h *Handler) subCategoriesByCategory(w http.ResponseWriter, r *http.Request) {
	catID, ok := pathID(w, r, "categoryId", id.PrefixCategory)
	if !ok {
		return
	}

	rows, err := h.subCategories.FindByCategory(r.Context(), catID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "SubCategories retrieved successfully", rows)
}

func (h *Handler) getSubCategory(w http.ResponseWriter, r *http.Request) {
	scID, ok := pathID(w, r, "id", id.PrefixSubCategory)
	if !ok {
		return
	}

	sc, err := h.subCategories.Get(r.Context(), scID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "SubCategory retrieved successfully", sc)
}

func (h *Handler) updateSubCategory(w http.ResponseWriter, r *http.Request) {
	scID, ok := pathID(w, r, "id", id.PrefixSubCategory)
	if !ok {
		return
	}
	var in subcategory.UpdateInput
	if !h.decode(w, r, &in) {
		return
	}

	sc, err := h.subCategories.Update(r.Context(), scID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "SubCategory updated successfully", sc)
}

func (h *Handler) removeSubCategory(w http.ResponseWriter, r *http.Request) {
	scID, ok := pathID(w, r, "id", id.PrefixSubCategory)
	if !ok {
		return
	}

	sc, err := h.subCategories.Remove(r.Context(), scID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "SubCategory deleted successfully", sc)
}
