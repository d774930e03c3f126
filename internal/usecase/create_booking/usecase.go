package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	cartStore "github.com/m04kA/RiverRun-BookingService/internal/infra/cache/cart"
	bookingStorage "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/booking"
	couponRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/coupon"
	settingsRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/settings"
	ticketRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/ticket"
	"github.com/m04kA/RiverRun-BookingService/internal/integrations/paymentservice"
	slotsService "github.com/m04kA/RiverRun-BookingService/internal/service/slots"
	"github.com/m04kA/RiverRun-BookingService/pkg/ptr"
	"github.com/m04kA/RiverRun-BookingService/pkg/txmanager"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// UseCase use case оформления заказа
type UseCase struct {
	bookingRepo     BookingRepository
	slotFinder      SlotFinder
	ticketRepo      TicketRepository
	couponRepo      CouponRepository
	settingsRepo    SettingsRepository
	cartStore       CartStore
	userClient      UserServiceClient
	paymentVerifier PaymentVerifier
	qrSigner        QRSigner
	metrics         Metrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// paymentVerifier может быть nil, тогда онлайн-оплата не проверяется.
func NewUseCase(
	bookingRepo BookingRepository,
	slotFinder SlotFinder,
	ticketRepo TicketRepository,
	couponRepo CouponRepository,
	settingsRepo SettingsRepository,
	cartStore CartStore,
	userClient UserServiceClient,
	paymentVerifier PaymentVerifier,
	qrSigner QRSigner,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		slotFinder:      slotFinder,
		ticketRepo:      ticketRepo,
		couponRepo:      couponRepo,
		settingsRepo:    settingsRepo,
		cartStore:       cartStore,
		userClient:      userClient,
		paymentVerifier: paymentVerifier,
		qrSigner:        qrSigner,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute оформляет заказ. Места в слотах проверяются и занимаются
// в одной сериализуемой транзакции под advisory-блокировками слотов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, items=%d, cart=%t, pos=%t",
		req.UserID, len(req.Items), req.CartToken != nil, req.IsPOS())

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Позиции из корзины
	if req.CartToken != nil {
		if err := uc.loadCart(ctx, req); err != nil {
			return nil, err
		}
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// 3. Цены и названия с сервера
	items, err := uc.priceItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	// 4. Купон и налог
	coupon, err := uc.resolveCoupon(ctx, req.CouponCode)
	if err != nil {
		return nil, err
	}
	taxPercentage, err := uc.taxPercentage(ctx)
	if err != nil {
		return nil, err
	}
	totals := domain.CalculateTotals(items, coupon, taxPercentage)

	// 5. Покупатель
	name, email := uc.resolveCustomer(ctx, req)

	// 6. Оплата проверяется до транзакции
	transactionID, err := uc.checkPayment(ctx, req, totals.Total)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:                  uuid.NewString(),
		UserID:              req.UserID,
		CustomerName:        name,
		CustomerEmail:       email,
		Items:               items,
		Subtotal:            totals.Subtotal,
		DiscountAmount:      totals.Discount,
		TaxAmount:           totals.Tax,
		TotalAmount:         totals.Total,
		Status:              domain.StatusPaid,
		PaymentMethod:       req.PaymentMethod,
		TransactionID:       transactionID,
		CreatedByStaffID:    req.CreatedByStaffID,
		CreatedByStaffEmail: req.CreatedByStaffEmail,
	}
	if coupon != nil {
		booking.CouponCode = ptr.Ptr(coupon.Code)
	}
	booking.QRCodeData = uc.qrSigner.Sign(booking.ID)

	quantities := domain.ActivityQuantities(items)
	slotIDs := sortedSlotIDs(quantities)

	var result *domain.Booking

	// 7. Проверка мест и запись заказа в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Блокируем слоты заказа
		if err := uc.bookingRepo.LockSlots(txCtx, slotIDs); err != nil {
			uc.logger.Error("CreateBooking: failed to lock slots: %v", err)
			return fmt.Errorf("%w: failed to lock slots: %w", ErrInternal, err)
		}

		// 7.2. Пересчитываем занятость из журнала бронирований
		for _, slotID := range slotIDs {
			slot, err := uc.slotFinder.FindSlot(txCtx, slotID)
			if err != nil {
				if errors.Is(err, slotsService.ErrSlotNotFound) {
					uc.logger.Warn("CreateBooking: slot id=%s disappeared before commit", slotID)
					return &SlotUnavailableError{SlotID: slotID}
				}
				uc.logger.Error("CreateBooking: failed to find slot id=%s: %v", slotID, err)
				return fmt.Errorf("%w: failed to find slot: %w", ErrInternal, err)
			}

			if slot.Available(0) < quantities[slotID] {
				uc.logger.Warn("CreateBooking: slot id=%s has %d seats left, requested %d",
					slotID, slot.Available(0), quantities[slotID])
				return &SlotUnavailableError{SlotID: slotID}
			}
		}

		// 7.3. Одна транзакция оплачивает один заказ
		if transactionID != nil {
			used, err := uc.bookingRepo.ExistsByTransactionID(txCtx, *transactionID)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to check transaction id: %v", err)
				return fmt.Errorf("%w: failed to check transaction id: %w", ErrInternal, err)
			}
			if used {
				uc.logger.Warn("CreateBooking: transaction id=%s already paid another booking", *transactionID)
				return fmt.Errorf("%w: transaction id=%s", ErrPaymentAlreadyUsed, *transactionID)
			}
		}

		// 7.4. Сохраняем заказ
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingStorage.ErrDuplicateTransaction) {
				uc.logger.Warn("CreateBooking: transaction id=%s already paid another booking", ptr.Value(transactionID))
				return fmt.Errorf("%w: %w", ErrPaymentAlreadyUsed, err)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		var unavailable *SlotUnavailableError
		switch {
		case errors.As(err, &unavailable):
			uc.metrics.IncCapacityConflict()
			return nil, unavailable
		case errors.Is(err, ErrPaymentAlreadyUsed):
			return nil, err
		case txmanager.IsSerializationFailure(err) && len(slotIDs) > 0:
			uc.logger.Warn("CreateBooking: serialization failure, user=%s: %v", req.UserID, err)
			uc.metrics.IncCapacityConflict()
			return nil, &SlotUnavailableError{SlotID: slotIDs[0]}
		case errors.Is(err, ErrInternal):
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	// 8. Корзина больше не нужна
	if req.CartToken != nil {
		if err := uc.cartStore.Delete(ctx, *req.CartToken); err != nil {
			uc.logger.Warn("CreateBooking: failed to clear cart after booking id=%s: %v", result.ID, err)
		}
	}

	uc.metrics.IncBookingCreated(result.Channel())
	uc.logger.Info("CreateBooking: successfully created booking id=%s, total=%s", result.ID, result.TotalAmount.StringFixed(2))

	return &Response{Booking: result}, nil
}

// loadCart подставляет позиции и купон из корзины пользователя
func (uc *UseCase) loadCart(ctx context.Context, req *Request) error {
	cart, err := uc.cartStore.Get(ctx, *req.CartToken)
	if err != nil {
		if errors.Is(err, cartStore.ErrCartNotFound) {
			uc.logger.Warn("CreateBooking: cart not found or expired")
			return ErrCartNotFound
		}
		uc.logger.Error("CreateBooking: failed to load cart: %v", err)
		return fmt.Errorf("%w: failed to load cart: %w", ErrInternal, err)
	}

	if cart.UserID != req.UserID {
		uc.logger.Warn("CreateBooking: cart belongs to another user, user=%s", req.UserID)
		return ErrCartNotFound
	}
	if cart.IsEmpty() {
		return ErrEmptyCart
	}

	req.Items = itemsFromCart(cart)
	if req.CouponCode == nil {
		req.CouponCode = cart.CouponCode
	}

	return validateItems(req.Items)
}

// priceItems строит позиции заказа по данным каталога и расписания
func (uc *UseCase) priceItems(ctx context.Context, requested []ItemRequest) ([]domain.BookingItem, error) {
	today := types.DateOf(uc.timeProvider.Now())
	items := make([]domain.BookingItem, 0, len(requested))

	for _, item := range requested {
		switch item.Type {
		case domain.ItemTicket:
			ticket, err := uc.ticketRepo.GetByID(ctx, item.ReferenceID)
			if err != nil {
				if errors.Is(err, ticketRepo.ErrTicketNotFound) {
					return nil, fmt.Errorf("%w: ticket id=%s", ErrItemNotFound, item.ReferenceID)
				}
				uc.logger.Error("CreateBooking: failed to get ticket id=%s: %v", item.ReferenceID, err)
				return nil, fmt.Errorf("%w: failed to get ticket: %w", ErrInternal, err)
			}
			items = append(items, domain.BookingItem{
				ID:          uuid.NewString(),
				Type:        domain.ItemTicket,
				ReferenceID: ticket.ID,
				Title:       ticket.Title,
				Subtitle:    string(ticket.Category),
				Quantity:    item.Quantity,
				Price:       ticket.Price,
			})

		case domain.ItemActivity:
			slot, err := uc.slotFinder.FindSlot(ctx, item.ReferenceID)
			if err != nil {
				if errors.Is(err, slotsService.ErrSlotNotFound) {
					return nil, fmt.Errorf("%w: slot id=%s", ErrItemNotFound, item.ReferenceID)
				}
				uc.logger.Error("CreateBooking: failed to find slot id=%s: %v", item.ReferenceID, err)
				return nil, fmt.Errorf("%w: failed to find slot: %w", ErrInternal, err)
			}
			if slot.Date.Before(today) {
				return nil, fmt.Errorf("%w: slot id=%s, date=%s", ErrSlotInPast, slot.ID, slot.Date)
			}
			items = append(items, domain.BookingItem{
				ID:          uuid.NewString(),
				Type:        domain.ItemActivity,
				ReferenceID: slot.ID,
				Title:       slot.ActivityTitle,
				Subtitle:    slot.Subtitle(),
				Quantity:    item.Quantity,
				Price:       slot.Price,
			})
		}
	}

	return items, nil
}

// resolveCoupon находит активный купон по коду. Пустой код означает заказ без скидки.
func (uc *UseCase) resolveCoupon(ctx context.Context, code *string) (*domain.Coupon, error) {
	if code == nil || domain.NormalizeCouponCode(*code) == "" {
		return nil, nil
	}

	coupon, err := uc.couponRepo.GetByCode(ctx, *code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			uc.logger.Warn("CreateBooking: coupon %q not found", *code)
			return nil, ErrInvalidCoupon
		}
		uc.logger.Error("CreateBooking: failed to get coupon: %v", err)
		return nil, fmt.Errorf("%w: failed to get coupon: %w", ErrInternal, err)
	}

	if !coupon.IsActive {
		uc.logger.Warn("CreateBooking: coupon %s is inactive", coupon.Code)
		return nil, ErrInvalidCoupon
	}

	return coupon, nil
}

// taxPercentage читает ставку налога; без сохранённых настроек действует ставка по умолчанию
func (uc *UseCase) taxPercentage(ctx context.Context) (decimal.Decimal, error) {
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return domain.DefaultTaxPercentage, nil
		}
		uc.logger.Error("CreateBooking: failed to get settings: %v", err)
		return decimal.Zero, fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
	}
	return settings.TaxPercentage, nil
}

// resolveCustomer определяет имя и email покупателя
func (uc *UseCase) resolveCustomer(ctx context.Context, req *Request) (string, string) {
	if req.IsPOS() {
		return valueOr(req.CustomerName, walkInCustomerName), valueOr(req.CustomerEmail, "")
	}

	user, err := uc.userClient.GetUserWithGracefulDegradation(ctx, req.UserID)
	if err != nil {
		uc.logger.Warn("CreateBooking: using request customer data for user=%s: %v", req.UserID, err)
		return valueOr(req.CustomerName, ""), valueOr(req.CustomerEmail, "")
	}

	return valueOr(&user.Name, valueOr(req.CustomerName, "")), valueOr(&user.Email, valueOr(req.CustomerEmail, ""))
}

// checkPayment проверяет оплату и возвращает id транзакции для заказа
func (uc *UseCase) checkPayment(ctx context.Context, req *Request, total decimal.Decimal) (*string, error) {
	switch req.PaymentMethod {
	case domain.PaymentCash:
		return nil, nil

	case domain.PaymentOnline:
		// Касса вводит id перевода вручную
		if req.TransactionID == nil || *req.TransactionID == "" {
			return nil, ErrPaymentRequired
		}
		return req.TransactionID, nil
	}

	if uc.paymentVerifier == nil {
		uc.logger.Warn("CreateBooking: payment service is disabled, card payment for user=%s is not verified", req.UserID)
		if req.TransactionID != nil && *req.TransactionID != "" {
			return req.TransactionID, nil
		}
		return ptr.Ptr("TXN-" + uuid.NewString()[:8]), nil
	}

	if req.TransactionID == nil || *req.TransactionID == "" {
		return nil, ErrPaymentRequired
	}

	if err := uc.paymentVerifier.VerifyPayment(ctx, *req.TransactionID, total); err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrPaymentNotFound),
			errors.Is(err, paymentservice.ErrPaymentNotCaptured),
			errors.Is(err, paymentservice.ErrAmountMismatch):
			uc.logger.Warn("CreateBooking: payment txn=%s rejected: %v", *req.TransactionID, err)
			return nil, fmt.Errorf("%w: %w", ErrPaymentFailed, err)
		}
		uc.logger.Error("CreateBooking: failed to verify payment txn=%s: %v", *req.TransactionID, err)
		return nil, fmt.Errorf("%w: failed to verify payment: %w", ErrInternal, err)
	}

	return req.TransactionID, nil
}
