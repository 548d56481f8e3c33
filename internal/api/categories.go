package api

import (
	"log/slog"
	"net/http"

	"github.com/Ruggero-R/EzSupply/internal/model"
	"github.com/Ruggero-R/EzSupply/internal/store"
)

// CategoriesHandler handles category endpoints.
type CategoriesHandler struct {
	Categories *store.Categories
}

type categoryRequest struct {
	Name string  `json:"name"`
	Icon *string `json:"icon"`
}

// List handles GET /api/categories.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Categories.List(r.Context())
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	jsonResponse(w, http.StatusOK, categories)
}

// Create handles POST /api/categories.
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	id, err := h.Categories.Create(r.Context(), req.Name, req.Icon)
	if err != nil {
		slog.Error("failed to create category", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	jsonResponse(w, http.StatusCreated, model.Category{ID: id, Name: req.Name, Icon: req.Icon})
}

// Update handles PUT /api/categories/{id}.
func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	id := r.PathValue("id")
	if err := h.Categories.Update(r.Context(), id, req.Name, req.Icon); err != nil {
		slog.Error("failed to update category", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update category")
		return
	}

	jsonResponse(w, http.StatusOK, model.Category{ID: id, Name: req.Name, Icon: req.Icon})
}
