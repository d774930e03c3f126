package catalog

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/RiverRun-BookingService/internal/api/handlers"
	"github.com/m04kA/RiverRun-BookingService/internal/service/catalog/models"
)

// ListStaff GET /api/v1/staff
func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListStaff(r.Context())
	if err != nil {
		h.respondError(w, "GET /staff", "", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateStaff POST /api/v1/staff
func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req models.StaffRequest
	if !h.decode(w, r, "POST /staff", &req) {
		return
	}

	result, err := h.service.CreateStaff(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /staff", "", err)
		return
	}

	h.logger.Info("POST /staff - Staff created successfully: staff_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateStaff PUT /api/v1/staff/{staffId}
func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["staffId"]

	var req models.StaffRequest
	if !h.decode(w, r, "PUT /staff/{id}", &req) {
		return
	}

	result, err := h.service.UpdateStaff(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /staff/{id}", id, err)
		return
	}

	h.logger.Info("PUT /staff/{id} - Staff updated successfully: staff_id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteStaff DELETE /api/v1/staff/{staffId}
func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["staffId"]

	if err := h.service.DeleteStaff(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /staff/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /staff/{id} - Staff deleted successfully: staff_id=%s", id)
	handlers.RespondNoContent(w)
}
