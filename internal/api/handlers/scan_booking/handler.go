package scan_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/RiverRun-BookingService/internal/api/handlers"
	"github.com/m04kA/RiverRun-BookingService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgNotPaid            = "бронирование не оплачено"
	msgAlreadyScanned     = "билет уже использован"
	msgInvalidPayload     = "QR-код недействителен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleByID POST /api/v1/bookings/{bookingId}/scan
func (h *Handler) HandleByID(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	booking, err := h.service.MarkScanned(r.Context(), bookingID)
	if err != nil {
		h.respondScanError(w, "POST /bookings/{id}/scan", bookingID, err)
		return
	}

	h.logger.Info("POST /bookings/{id}/scan - Booking scanned successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

// HandleByPayload POST /api/v1/bookings/scan
func (h *Handler) HandleByPayload(w http.ResponseWriter, r *http.Request) {
	var req ScanPayloadRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || strings.TrimSpace(req.Payload) == "" {
		h.logger.Warn("POST /bookings/scan - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.ScanPayload(r.Context(), strings.TrimSpace(req.Payload))
	if err != nil {
		h.respondScanError(w, "POST /bookings/scan", "", err)
		return
	}

	h.logger.Info("POST /bookings/scan - Booking scanned successfully: booking_id=%s", booking.ID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

func (h *Handler) respondScanError(w http.ResponseWriter, route, bookingID string, err error) {
	switch {
	case errors.Is(err, bookings.ErrInvalidQRPayload):
		h.logger.Warn("%s - Invalid QR payload", route)
		handlers.RespondBadRequest(w, msgInvalidPayload)

	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found: booking_id=%s", route, bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrNotPaid):
		h.logger.Warn("%s - Booking not paid: booking_id=%s", route, bookingID)
		handlers.RespondConflict(w, msgNotPaid, "")

	case errors.Is(err, bookings.ErrAlreadyScanned):
		h.logger.Warn("%s - Booking already scanned: booking_id=%s", route, bookingID)
		handlers.RespondConflict(w, msgAlreadyScanned, "")

	default:
		h.logger.Error("%s - Failed to scan booking: booking_id=%s, error=%v", route, bookingID, err)
		handlers.RespondInternalError(w)
	}
}
