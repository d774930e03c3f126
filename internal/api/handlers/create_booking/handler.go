package create_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/RiverRun-BookingService/internal/api/handlers"
	"github.com/m04kA/RiverRun-BookingService/internal/api/middleware"
	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	createBooking "github.com/m04kA/RiverRun-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPOSForbidden       = "продажа через кассу доступна только сотрудникам"
	msgSlotNotAvailable   = "в выбранном слоте не хватает мест"
	msgEmptyCart          = "корзина пуста"
	msgCartNotFound       = "корзина не найдена или истекла"
	msgItemNotFound       = "билет или слот не найден"
	msgSlotInPast         = "нельзя купить слот на прошедшую дату"
	msgInvalidCoupon      = "купон недействителен"
	msgPaymentRequired    = "не указан ID транзакции"
	msgPaymentFailed      = "платеж не подтвержден"
	msgInvalidData        = "некорректные данные заказа"
	msgCounterPaymentOnly = "оплата наличными и переводом доступна только на кассе"
	msgPaymentUsed        = "транзакция уже использована для другого заказа"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.POS && !role.CanSeeAllBookings() {
		h.logger.Warn("POST /bookings - POS sale by non-staff user: user_id=%s, role=%s", userID, role)
		handlers.RespondForbidden(w, msgPOSForbidden)
		return
	}

	if method := domain.PaymentMethod(strings.ToUpper(req.PaymentMethod)); !req.POS && (method == domain.PaymentCash || method == domain.PaymentOnline) {
		h.logger.Warn("POST /bookings - Counter payment method outside POS: user_id=%s, method=%s", userID, req.PaymentMethod)
		handlers.RespondBadRequest(w, msgCounterPaymentOnly)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		var unavailable *createBooking.SlotUnavailableError
		switch {
		case errors.As(err, &unavailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%s, slot_id=%s", userID, unavailable.SlotID)
			handlers.RespondConflict(w, msgSlotNotAvailable, unavailable.SlotID)

		case errors.Is(err, createBooking.ErrEmptyCart):
			h.logger.Warn("POST /bookings - Empty cart: user_id=%s", userID)
			handlers.RespondBadRequest(w, msgEmptyCart)

		case errors.Is(err, createBooking.ErrCartNotFound):
			h.logger.Warn("POST /bookings - Cart not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgCartNotFound)

		case errors.Is(err, createBooking.ErrItemNotFound):
			h.logger.Warn("POST /bookings - Item not found: user_id=%s, error=%v", userID, err)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Slot in the past: user_id=%s", userID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrInvalidCoupon):
			h.logger.Warn("POST /bookings - Invalid coupon: user_id=%s", userID)
			handlers.RespondBadRequest(w, msgInvalidCoupon)

		case errors.Is(err, createBooking.ErrPaymentRequired):
			h.logger.Warn("POST /bookings - Missing transaction id: user_id=%s", userID)
			handlers.RespondBadRequest(w, msgPaymentRequired)

		case errors.Is(err, createBooking.ErrPaymentFailed):
			h.logger.Warn("POST /bookings - Payment not confirmed: user_id=%s, error=%v", userID, err)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentFailed)

		case errors.Is(err, createBooking.ErrPaymentAlreadyUsed):
			h.logger.Warn("POST /bookings - Transaction reused: user_id=%s, error=%v", userID, err)
			handlers.RespondError(w, http.StatusConflict, msgPaymentUsed)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid data: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, total=%s",
		result.Booking.ID, userID, result.Booking.TotalAmount.StringFixed(2))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
