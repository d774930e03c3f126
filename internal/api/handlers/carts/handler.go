package carts

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/RiverRun-BookingService/internal/api/handlers"
	"github.com/m04kA/RiverRun-BookingService/internal/api/middleware"
	"github.com/m04kA/RiverRun-BookingService/internal/service/cart"
	"github.com/m04kA/RiverRun-BookingService/internal/service/cart/models"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCartNotFound       = "корзина не найдена или истекла"
	msgItemNotFound       = "позиция не найдена"
	msgSlotInPast         = "нельзя добавить слот на прошедшую дату"
	msgSlotNotAvailable   = "в выбранном слоте не хватает мест"
	msgInvalidCoupon      = "купон недействителен"
	msgCartFull           = "в корзине слишком много позиций"
	msgInvalidData        = "некорректные данные позиции"
	msgCartBusy           = "корзина изменяется другим запросом, повторите попытку"
)

type Handler struct {
	service CartService
	logger  Logger
}

func NewHandler(service CartService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/carts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r, "POST /carts")
	if !ok {
		return
	}

	result, err := h.service.Create(r.Context(), userID)
	if err != nil {
		h.respondError(w, "POST /carts", userID, err)
		return
	}

	h.logger.Info("POST /carts - Cart created successfully: user_id=%s", userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Get GET /api/v1/carts/{cartToken}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r, "GET /carts/{token}")
	if !ok {
		return
	}

	result, err := h.service.Get(r.Context(), mux.Vars(r)["cartToken"], userID)
	if err != nil {
		h.respondError(w, "GET /carts/{token}", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// AddItem POST /api/v1/carts/{cartToken}/items
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r, "POST /carts/{token}/items")
	if !ok {
		return
	}

	var req models.AddItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /carts/{token}/items - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddItem(r.Context(), mux.Vars(r)["cartToken"], userID, &req)
	if err != nil {
		h.respondError(w, "POST /carts/{token}/items", userID, err)
		return
	}

	h.logger.Info("POST /carts/{token}/items - Item added: user_id=%s, type=%s, ref=%s, qty=%d",
		userID, req.Type, req.ReferenceID, req.Quantity)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// RemoveItem DELETE /api/v1/carts/{cartToken}/items/{itemId}
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r, "DELETE /carts/{token}/items/{id}")
	if !ok {
		return
	}

	vars := mux.Vars(r)
	result, err := h.service.RemoveItem(r.Context(), vars["cartToken"], userID, vars["itemId"])
	if err != nil {
		h.respondError(w, "DELETE /carts/{token}/items/{id}", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ApplyCoupon PUT /api/v1/carts/{cartToken}/coupon
func (h *Handler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r, "PUT /carts/{token}/coupon")
	if !ok {
		return
	}

	var req models.ApplyCouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /carts/{token}/coupon - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ApplyCoupon(r.Context(), mux.Vars(r)["cartToken"], userID, &req)
	if err != nil {
		h.respondError(w, "PUT /carts/{token}/coupon", userID, err)
		return
	}

	h.logger.Info("PUT /carts/{token}/coupon - Coupon applied: user_id=%s, code=%s", userID, req.Code)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// RemoveCoupon DELETE /api/v1/carts/{cartToken}/coupon
func (h *Handler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r, "DELETE /carts/{token}/coupon")
	if !ok {
		return
	}

	result, err := h.service.RemoveCoupon(r.Context(), mux.Vars(r)["cartToken"], userID)
	if err != nil {
		h.respondError(w, "DELETE /carts/{token}/coupon", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request, route string) (string, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
	}
	return userID, ok
}

func (h *Handler) respondError(w http.ResponseWriter, route, userID string, err error) {
	var unavailable *cart.SlotUnavailableError
	switch {
	case errors.As(err, &unavailable):
		h.logger.Warn("%s - Slot not available: user_id=%s, slot_id=%s, available=%d",
			route, userID, unavailable.SlotID, unavailable.Available)
		handlers.RespondConflict(w, msgSlotNotAvailable, unavailable.SlotID)

	case errors.Is(err, cart.ErrCartNotFound):
		h.logger.Warn("%s - Cart not found: user_id=%s", route, userID)
		handlers.RespondNotFound(w, msgCartNotFound)

	case errors.Is(err, cart.ErrItemNotFound):
		h.logger.Warn("%s - Item not found: user_id=%s, error=%v", route, userID, err)
		handlers.RespondNotFound(w, msgItemNotFound)

	case errors.Is(err, cart.ErrSlotInPast):
		h.logger.Warn("%s - Slot in the past: user_id=%s", route, userID)
		handlers.RespondBadRequest(w, msgSlotInPast)

	case errors.Is(err, cart.ErrInvalidCoupon):
		h.logger.Warn("%s - Invalid coupon: user_id=%s", route, userID)
		handlers.RespondBadRequest(w, msgInvalidCoupon)

	case errors.Is(err, cart.ErrCartFull):
		h.logger.Warn("%s - Cart is full: user_id=%s", route, userID)
		handlers.RespondBadRequest(w, msgCartFull)

	case errors.Is(err, cart.ErrCartBusy):
		h.logger.Warn("%s - Cart busy: user_id=%s", route, userID)
		handlers.RespondError(w, http.StatusConflict, msgCartBusy)

	case errors.Is(err, cart.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: user_id=%s, error=%v", route, userID, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	default:
		h.logger.Error("%s - Failed: user_id=%s, error=%v", route, userID, err)
		handlers.RespondInternalError(w)
	}
}
