package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	cartStore "github.com/m04kA/RiverRun-BookingService/internal/infra/cache/cart"
	couponRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/coupon"
	settingsRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/settings"
	ticketRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/ticket"
	"github.com/m04kA/RiverRun-BookingService/internal/service/cart/models"
	slotsService "github.com/m04kA/RiverRun-BookingService/internal/service/slots"
	"github.com/m04kA/RiverRun-BookingService/pkg/ptr"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// Service серверная корзина покупателя
type Service struct {
	store        CartStore
	slotFinder   SlotFinder
	ticketRepo   TicketRepository
	couponRepo   CouponRepository
	settingsRepo SettingsRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса корзины
func NewService(
	store CartStore,
	slotFinder SlotFinder,
	ticketRepo TicketRepository,
	couponRepo CouponRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *Service {
	return &Service{
		store:        store,
		slotFinder:   slotFinder,
		ticketRepo:   ticketRepo,
		couponRepo:   couponRepo,
		settingsRepo: settingsRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Create открывает новую пустую корзину пользователя
func (s *Service) Create(ctx context.Context, userID string) (*models.CartResponse, error) {
	now := s.timeProvider.Now()
	cart := &domain.Cart{
		Token:     uuid.NewString(),
		UserID:    userID,
		Items:     []domain.BookingItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Save(ctx, cart); err != nil {
		s.logger.Error("Create: failed to save cart for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: Create - save: %w", ErrInternal, err)
	}

	s.logger.Info("Create: opened cart for user=%s", userID)
	return s.quote(ctx, cart)
}

// Get возвращает корзину с расчётом сумм
func (s *Service) Get(ctx context.Context, token, userID string) (*models.CartResponse, error) {
	cart, err := s.load(ctx, "Get", token, userID)
	if err != nil {
		return nil, err
	}
	return s.quote(ctx, cart)
}

// AddItem добавляет позицию. Для слота проверяется, что мест хватает с учётом уже лежащих в корзине.
func (s *Service) AddItem(ctx context.Context, token, userID string, req *models.AddItemRequest) (*models.CartResponse, error) {
	s.logger.Info("AddItem: user=%s, type=%s, ref=%s, qty=%d", userID, req.Type, req.ReferenceID, req.Quantity)

	// 1. Валидация входных данных
	itemType := domain.ItemType(strings.ToUpper(req.Type))
	if !itemType.IsValid() {
		return nil, fmt.Errorf("%w: unknown item type %q", ErrInvalidInput, req.Type)
	}
	if strings.TrimSpace(req.ReferenceID) == "" {
		return nil, fmt.Errorf("%w: referenceId is required", ErrInvalidInput)
	}
	if req.Quantity < 1 || req.Quantity > domain.MaxItemQuantity {
		return nil, fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidInput, domain.MaxItemQuantity)
	}

	// 2. Позиция проверяется и добавляется на свежей версии корзины
	cart, err := s.update(ctx, "AddItem", token, userID, func(cart *domain.Cart) error {
		if cart.QuantityFor(req.ReferenceID) == 0 && len(cart.Items) >= domain.MaxCartItems {
			return ErrCartFull
		}
		if cart.QuantityFor(req.ReferenceID)+req.Quantity > domain.MaxItemQuantity {
			return fmt.Errorf("%w: at most %d units per item", ErrInvalidInput, domain.MaxItemQuantity)
		}

		// 3. Позиция по данным каталога
		var item domain.BookingItem
		var err error
		switch itemType {
		case domain.ItemTicket:
			item, err = s.ticketItem(ctx, req.ReferenceID, req.Quantity)
		case domain.ItemActivity:
			item, err = s.slotItem(ctx, cart, req.ReferenceID, req.Quantity)
		}
		if err != nil {
			return err
		}

		cart.AddItem(item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.quote(ctx, cart)
}

// RemoveItem удаляет позицию из корзины
func (s *Service) RemoveItem(ctx context.Context, token, userID, itemID string) (*models.CartResponse, error) {
	cart, err := s.update(ctx, "RemoveItem", token, userID, func(cart *domain.Cart) error {
		if !cart.RemoveItem(itemID) {
			return fmt.Errorf("%w: item id=%s", ErrItemNotFound, itemID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.quote(ctx, cart)
}

// ApplyCoupon применяет активный купон к корзине
func (s *Service) ApplyCoupon(ctx context.Context, token, userID string, req *models.ApplyCouponRequest) (*models.CartResponse, error) {
	code := domain.NormalizeCouponCode(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			s.logger.Warn("ApplyCoupon: coupon %s not found", code)
			return nil, ErrInvalidCoupon
		}
		s.logger.Error("ApplyCoupon: repository error: %v", err)
		return nil, fmt.Errorf("%w: ApplyCoupon - repository error: %w", ErrInternal, err)
	}
	if !coupon.IsActive {
		s.logger.Warn("ApplyCoupon: coupon %s is inactive", code)
		return nil, ErrInvalidCoupon
	}

	cart, err := s.update(ctx, "ApplyCoupon", token, userID, func(cart *domain.Cart) error {
		cart.CouponCode = ptr.Ptr(coupon.Code)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.quote(ctx, cart)
}

// RemoveCoupon снимает купон с корзины
func (s *Service) RemoveCoupon(ctx context.Context, token, userID string) (*models.CartResponse, error) {
	cart, err := s.update(ctx, "RemoveCoupon", token, userID, func(cart *domain.Cart) error {
		cart.CouponCode = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.quote(ctx, cart)
}

// Вспомогательные методы

func (s *Service) load(ctx context.Context, op, token, userID string) (*domain.Cart, error) {
	cart, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, cartStore.ErrCartNotFound) {
			s.logger.Warn("%s: cart not found or expired", op)
			return nil, ErrCartNotFound
		}
		s.logger.Error("%s: failed to load cart: %v", op, err)
		return nil, fmt.Errorf("%w: %s - load: %w", ErrInternal, op, err)
	}

	if cart.UserID != userID {
		s.logger.Warn("%s: cart belongs to another user, user=%s", op, userID)
		return nil, ErrCartNotFound
	}

	return cart, nil
}

// update меняет корзину владельца через оптимистичную транзакцию хранилища
func (s *Service) update(ctx context.Context, op, token, userID string, change func(cart *domain.Cart) error) (*domain.Cart, error) {
	var changeErr error
	cart, err := s.store.Update(ctx, token, func(cart *domain.Cart) error {
		changeErr = nil
		if cart.UserID != userID {
			s.logger.Warn("%s: cart belongs to another user, user=%s", op, userID)
			changeErr = ErrCartNotFound
			return changeErr
		}
		if err := change(cart); err != nil {
			changeErr = err
			return err
		}
		cart.UpdatedAt = s.timeProvider.Now()
		return nil
	})
	if err == nil {
		return cart, nil
	}

	switch {
	case changeErr != nil:
		return nil, changeErr
	case errors.Is(err, cartStore.ErrCartNotFound):
		s.logger.Warn("%s: cart not found or expired", op)
		return nil, ErrCartNotFound
	case errors.Is(err, cartStore.ErrConflict):
		s.logger.Warn("%s: cart token=%s is modified concurrently: %v", op, token, err)
		return nil, ErrCartBusy
	}
	s.logger.Error("%s: failed to update cart: %v", op, err)
	return nil, fmt.Errorf("%w: %s - update: %w", ErrInternal, op, err)
}

func (s *Service) ticketItem(ctx context.Context, ticketID string, quantity int) (domain.BookingItem, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, ticketRepo.ErrTicketNotFound) {
			return domain.BookingItem{}, fmt.Errorf("%w: ticket id=%s", ErrItemNotFound, ticketID)
		}
		s.logger.Error("AddItem: failed to get ticket id=%s: %v", ticketID, err)
		return domain.BookingItem{}, fmt.Errorf("%w: failed to get ticket: %w", ErrInternal, err)
	}

	return domain.BookingItem{
		ID:          uuid.NewString(),
		Type:        domain.ItemTicket,
		ReferenceID: ticket.ID,
		Title:       ticket.Title,
		Subtitle:    string(ticket.Category),
		Quantity:    quantity,
		Price:       ticket.Price,
	}, nil
}

func (s *Service) slotItem(ctx context.Context, cart *domain.Cart, slotID string, quantity int) (domain.BookingItem, error) {
	slot, err := s.slotFinder.FindSlot(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotsService.ErrSlotNotFound) {
			return domain.BookingItem{}, fmt.Errorf("%w: slot id=%s", ErrItemNotFound, slotID)
		}
		s.logger.Error("AddItem: failed to find slot id=%s: %v", slotID, err)
		return domain.BookingItem{}, fmt.Errorf("%w: failed to find slot: %w", ErrInternal, err)
	}

	if slot.Date.Before(types.DateOf(s.timeProvider.Now())) {
		return domain.BookingItem{}, fmt.Errorf("%w: slot id=%s, date=%s", ErrSlotInPast, slotID, slot.Date)
	}

	available := slot.Available(cart.QuantityFor(slotID))
	if available < quantity {
		s.logger.Warn("AddItem: slot id=%s has %d seats for this cart, requested %d", slotID, available, quantity)
		return domain.BookingItem{}, &SlotUnavailableError{SlotID: slotID, Available: available}
	}

	return domain.BookingItem{
		ID:          uuid.NewString(),
		Type:        domain.ItemActivity,
		ReferenceID: slot.ID,
		Title:       slot.ActivityTitle,
		Subtitle:    slot.Subtitle(),
		Quantity:    quantity,
		Price:       slot.Price,
	}, nil
}

// quote считает суммы корзины по текущим купону и ставке налога
func (s *Service) quote(ctx context.Context, cart *domain.Cart) (*models.CartResponse, error) {
	var coupon *domain.Coupon
	if cart.CouponCode != nil {
		found, err := s.couponRepo.GetByCode(ctx, *cart.CouponCode)
		switch {
		case err == nil:
			coupon = found
		case errors.Is(err, couponRepo.ErrCouponNotFound):
			s.logger.Warn("quote: coupon %s no longer exists", *cart.CouponCode)
		default:
			return nil, fmt.Errorf("%w: quote - get coupon: %w", ErrInternal, err)
		}
	}

	taxPercentage := domain.DefaultTaxPercentage
	settings, err := s.settingsRepo.Get(ctx)
	switch {
	case err == nil:
		taxPercentage = settings.TaxPercentage
	case !errors.Is(err, settingsRepo.ErrSettingsNotFound):
		return nil, fmt.Errorf("%w: quote - get settings: %w", ErrInternal, err)
	}

	totals := domain.CalculateTotals(cart.Items, coupon, taxPercentage)
	return models.FromDomainCart(cart, totals, taxPercentage.InexactFloat64(), cart.UpdatedAt.Add(s.store.TTL())), nil
}
