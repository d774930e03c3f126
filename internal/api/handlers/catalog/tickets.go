package catalog

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/RiverRun-BookingService/internal/api/handlers"
	"github.com/m04kA/RiverRun-BookingService/internal/service/catalog/models"
)

// ListTickets GET /api/v1/tickets
func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListTickets(r.Context())
	if err != nil {
		h.respondError(w, "GET /tickets", "", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateTicket POST /api/v1/tickets
func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req models.TicketRequest
	if !h.decode(w, r, "POST /tickets", &req) {
		return
	}

	result, err := h.service.CreateTicket(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /tickets", "", err)
		return
	}

	h.logger.Info("POST /tickets - Ticket created successfully: ticket_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// DeleteTicket DELETE /api/v1/tickets/{ticketId}
func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["ticketId"]

	if err := h.service.DeleteTicket(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /tickets/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /tickets/{id} - Ticket deleted successfully: ticket_id=%s", id)
	handlers.RespondNoContent(w)
}
