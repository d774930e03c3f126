package catalog

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/RiverRun-BookingService/internal/api/handlers"
	"github.com/m04kA/RiverRun-BookingService/internal/service/catalog/models"
)

// ListCategories GET /api/v1/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.respondError(w, "GET /categories", "", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateCategory POST /api/v1/categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryRequest
	if !h.decode(w, r, "POST /categories", &req) {
		return
	}

	result, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /categories", "", err)
		return
	}

	h.logger.Info("POST /categories - Category created successfully: category_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// DeleteCategory DELETE /api/v1/categories/{categoryId}
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["categoryId"]

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /categories/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /categories/{id} - Category deleted successfully: category_id=%s", id)
	handlers.RespondNoContent(w)
}
