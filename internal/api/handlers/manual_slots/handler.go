package manual_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/RiverRun-BookingService/internal/api/handlers"
	"github.com/m04kA/RiverRun-BookingService/internal/api/handlers/list_slots"
	"github.com/m04kA/RiverRun-BookingService/internal/service/slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidData        = "некорректные данные слота"
	msgActivityNotFound   = "активность не найдена"
	msgStaffNotQualified  = "сотрудник не допущен к активности"
	msgSlotNotFound       = "слот не найден"
	msgGeneratedSlot      = "слот построен из правила расписания, удалите правило"
)

type Handler struct {
	engine SlotEngine
	logger Logger
}

func NewHandler(engine SlotEngine, logger Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// Create POST /api/v1/slots
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	slot, err := h.engine.CreateManualSlot(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrActivityNotFound):
			h.logger.Warn("POST /slots - Activity not found: activity_id=%s", req.ActivityID)
			handlers.RespondNotFound(w, msgActivityNotFound)

		case errors.Is(err, slots.ErrStaffNotQualified):
			h.logger.Warn("POST /slots - Staff not qualified: activity_id=%s, staff=%v", req.ActivityID, req.StaffIDs)
			handlers.RespondBadRequest(w, msgStaffNotQualified)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /slots - Invalid data: activity_id=%s, error=%v", req.ActivityID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /slots - Failed to create slot: activity_id=%s, error=%v", req.ActivityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots - Slot created successfully: slot_id=%s, activity_id=%s", slot.ID, slot.ActivityID)
	handlers.RespondJSON(w, http.StatusCreated, list_slots.FromDomainSlot(slot, 0))
}

// Delete DELETE /api/v1/slots/{slotId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	if err := h.engine.DeleteManualSlot(r.Context(), slotID); err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("DELETE /slots/{id} - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slots.ErrGeneratedSlot):
			h.logger.Warn("DELETE /slots/{id} - Generated slot: slot_id=%s", slotID)
			handlers.RespondBadRequest(w, msgGeneratedSlot)

		default:
			h.logger.Error("DELETE /slots/{id} - Failed to delete slot: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /slots/{id} - Slot deleted successfully: slot_id=%s", slotID)
	handlers.RespondNoContent(w)
}
