package catalog

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/RiverRun-BookingService/internal/api/handlers"
	"github.com/m04kA/RiverRun-BookingService/internal/service/catalog/models"
)

// ListActivities GET /api/v1/activities?categoryId=
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	var categoryID *string
	if id := strings.TrimSpace(r.URL.Query().Get("categoryId")); id != "" {
		categoryID = &id
	}

	result, err := h.service.ListActivities(r.Context(), categoryID)
	if err != nil {
		h.respondError(w, "GET /activities", "", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// GetActivity GET /api/v1/activities/{activityId}
func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["activityId"]

	result, err := h.service.GetActivity(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /activities/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateActivity POST /api/v1/activities
func (h *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req models.ActivityRequest
	if !h.decode(w, r, "POST /activities", &req) {
		return
	}

	result, err := h.service.CreateActivity(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /activities", "", err)
		return
	}

	h.logger.Info("POST /activities - Activity created successfully: activity_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateActivity PUT /api/v1/activities/{activityId}
func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["activityId"]

	var req models.ActivityRequest
	if !h.decode(w, r, "PUT /activities/{id}", &req) {
		return
	}

	result, err := h.service.UpdateActivity(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /activities/{id}", id, err)
		return
	}

	h.logger.Info("PUT /activities/{id} - Activity updated successfully: activity_id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteActivity DELETE /api/v1/activities/{activityId}
func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["activityId"]

	if err := h.service.DeleteActivity(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /activities/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /activities/{id} - Activity deleted successfully: activity_id=%s", id)
	handlers.RespondNoContent(w)
}
