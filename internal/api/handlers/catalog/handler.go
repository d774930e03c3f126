package catalog

import (
	"errors"
	"net/http"

	"github.com/m04kA/RiverRun-BookingService/internal/api/handlers"
	"github.com/m04kA/RiverRun-BookingService/internal/service/catalog"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные"
	msgActivityNotFound   = "активность не найдена"
	msgCategoryNotFound   = "категория не найдена"
	msgStaffNotFound      = "сотрудник не найден"
	msgTicketNotFound     = "билет не найден"
	msgInUse              = "запись используется и не может быть удалена"
)

// Handler обработчики каталога: активности, категории, сотрудники, билеты
type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string, dst interface{}) bool {
	if err := handlers.DecodeJSON(r, dst); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return false
	}
	return true
}

func (h *Handler) respondError(w http.ResponseWriter, route, id string, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: id=%s, error=%v", route, id, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	case errors.Is(err, catalog.ErrActivityNotFound):
		h.logger.Warn("%s - Activity not found: id=%s, error=%v", route, id, err)
		handlers.RespondNotFound(w, msgActivityNotFound)

	case errors.Is(err, catalog.ErrCategoryNotFound):
		h.logger.Warn("%s - Category not found: id=%s, error=%v", route, id, err)
		handlers.RespondNotFound(w, msgCategoryNotFound)

	case errors.Is(err, catalog.ErrStaffNotFound):
		h.logger.Warn("%s - Staff not found: id=%s, error=%v", route, id, err)
		handlers.RespondNotFound(w, msgStaffNotFound)

	case errors.Is(err, catalog.ErrTicketNotFound):
		h.logger.Warn("%s - Ticket not found: id=%s", route, id)
		handlers.RespondNotFound(w, msgTicketNotFound)

	case errors.Is(err, catalog.ErrInUse):
		h.logger.Warn("%s - Still referenced: id=%s", route, id)
		handlers.RespondConflict(w, msgInUse, "")

	default:
		h.logger.Error("%s - Failed: id=%s, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
