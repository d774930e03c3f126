package coupons

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/RiverRun-BookingService/internal/api/handlers"
	"github.com/m04kA/RiverRun-BookingService/internal/service/coupons"
	"github.com/m04kA/RiverRun-BookingService/internal/service/coupons/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные купона"
	msgNotFound           = "купон не найден"
	msgCodeTaken          = "купон с таким кодом уже существует"
)

type Handler struct {
	service CouponService
	logger  Logger
}

func NewHandler(service CouponService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/coupons
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, "GET /coupons", "", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// GetByCode GET /api/v1/coupons/code/{code}
// Публичный endpoint: проверка купона перед оформлением
func (h *Handler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	result, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		h.respondError(w, "GET /coupons/code/{code}", code, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/coupons
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /coupons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /coupons", req.Code, err)
		return
	}

	h.logger.Info("POST /coupons - Coupon created successfully: coupon_id=%s, code=%s", result.ID, result.Code)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// SetActive PATCH /api/v1/coupons/{couponId}
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["couponId"]

	var req models.SetActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /coupons/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetActive(r.Context(), id, &req); err != nil {
		h.respondError(w, "PATCH /coupons/{id}", id, err)
		return
	}

	h.logger.Info("PATCH /coupons/{id} - Coupon updated successfully: coupon_id=%s", id)
	handlers.RespondNoContent(w)
}

// Delete DELETE /api/v1/coupons/{couponId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["couponId"]

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /coupons/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /coupons/{id} - Coupon deleted successfully: coupon_id=%s", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route, ref string, err error) {
	switch {
	case errors.Is(err, coupons.ErrCouponNotFound):
		h.logger.Warn("%s - Coupon not found: ref=%s", route, ref)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, coupons.ErrCodeTaken):
		h.logger.Warn("%s - Code taken: code=%s", route, ref)
		handlers.RespondConflict(w, msgCodeTaken, "")

	case errors.Is(err, coupons.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: ref=%s, error=%v", route, ref, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	default:
		h.logger.Error("%s - Failed: ref=%s, error=%v", route, ref, err)
		handlers.RespondInternalError(w)
	}
}
