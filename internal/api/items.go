package api

import (
	"log/slog"
	"net/http"

	"github.com/Ruggero-R/EzSupply/internal/model"
	"github.com/Ruggero-R/EzSupply/internal/store"
)

// ItemsHandler handles item CRUD endpoints.
type ItemsHandler struct {
	Items *store.Items
}

type itemRequest struct {
	Name         string            `json:"name"`
	Unit         string            `json:"unit"`
	MinThreshold float64           `json:"min_threshold"`
	CategoryIDs  []string          `json:"category_ids"`
	Batches      []model.ItemBatch `json:"batches"`
	Location     *string           `json:"location"`
	Notes        *string           `json:"notes"`
}

func (req *itemRequest) toItem(updatedBy string) *model.Item {
	return &model.Item{
		Name:         req.Name,
		Unit:         req.Unit,
		MinThreshold: req.MinThreshold,
		CategoryIDs:  req.CategoryIDs,
		Batches:      req.Batches,
		Location:     req.Location,
		Notes:        req.Notes,
		UpdatedBy:    updatedBy,
	}
}

// itemResponse adds the derived quantities to the stored fields.
type itemResponse struct {
	model.Item
	TotalQuantity  float64 `json:"total_quantity"`
	BelowThreshold bool    `json:"below_threshold"`
}

func toItemResponse(item *model.Item) itemResponse {
	return itemResponse{
		Item:           *item,
		TotalQuantity:  item.TotalQuantity(),
		BelowThreshold: item.BelowThreshold(),
	}
}

// List handles GET /api/items. With ?restock=true only items under their
// threshold are returned.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Items.List(r.Context())
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	restockOnly := r.URL.Query().Get("restock") == "true"
	resp := make([]itemResponse, 0, len(items))
	for i := range items {
		if restockOnly && !items[i].BelowThreshold() {
			continue
		}
		resp = append(resp, toItemResponse(&items[i]))
	}
	jsonResponse(w, http.StatusOK, resp)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.Unit == "" {
		jsonError(w, http.StatusBadRequest, "name and unit required")
		return
	}

	claims := GetClaims(r.Context())
	item := req.toItem(claims.Username)

	id, err := h.Items.Create(r.Context(), item)
	if err != nil {
		slog.Error("failed to create item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	created, err := h.Items.Get(r.Context(), id)
	if err != nil || created == nil {
		slog.Error("failed to read back created item", "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	slog.Info("item created", "item", created.Name, "user", claims.Username)
	jsonResponse(w, http.StatusCreated, toItemResponse(created))
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Items.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	jsonResponse(w, http.StatusOK, toItemResponse(item))
}

// Update handles PUT /api/items/{id}. The whole item is resubmitted: there
// is no partial update of a single batch.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.Unit == "" {
		jsonError(w, http.StatusBadRequest, "name and unit required")
		return
	}

	id := r.PathValue("id")
	claims := GetClaims(r.Context())

	if err := h.Items.Update(r.Context(), id, req.toItem(claims.Username)); err != nil {
		slog.Error("failed to update item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	updated, err := h.Items.Get(r.Context(), id)
	if err != nil || updated == nil {
		slog.Error("failed to read back updated item", "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	jsonResponse(w, http.StatusOK, toItemResponse(updated))
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Items.Delete(r.Context(), r.PathValue("id")); err != nil {
		slog.Error("failed to delete item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}
