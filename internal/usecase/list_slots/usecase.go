package list_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
)

// UseCase use case для получения слотов на дату с доступностью
type UseCase struct {
	engine    SlotEngine
	cartStore CartStore
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	engine SlotEngine,
	cartStore CartStore,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		engine:    engine,
		cartStore: cartStore,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет use case получения слотов.
// Правила, ручные слоты и бронирования читаются из одного снимка БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListSlots: user=%s, date=%s", req.UserID, req.Date)

	// 1. Валидация входных данных
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Позиции в корзине вызывающего
	inCart := uc.cartHolds(ctx, req)

	// 3. Слоты в read-only транзакции
	var slots []*domain.Slot
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		slots, err = uc.engine.SlotsForDate(txCtx, req.Date)
		return err
	})
	if err != nil {
		uc.logger.Error("ListSlots: failed to build slots for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: failed to build slots: %w", ErrInternal, err)
	}

	// 4. Фильтр и доступность
	result := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		if req.ActivityID != nil && *req.ActivityID != "" && slot.ActivityID != *req.ActivityID {
			continue
		}
		held := inCart[slot.ID]
		result = append(result, Slot{
			Slot:      slot,
			InCart:    held,
			Available: slot.Available(held),
		})
	}

	uc.logger.Info("ListSlots: returned %d slots for date=%s", len(result), req.Date)

	return &Response{
		Date:  req.Date,
		Slots: result,
	}, nil
}

// cartHolds возвращает количество мест по слотам в корзине вызывающего.
// Чужая, истёкшая или недоступная корзина не учитывается.
func (uc *UseCase) cartHolds(ctx context.Context, req *Request) map[string]int {
	if req.CartToken == nil || *req.CartToken == "" {
		return map[string]int{}
	}

	cart, err := uc.cartStore.Get(ctx, *req.CartToken)
	if err != nil {
		uc.logger.Warn("ListSlots: cart token=%s ignored: %v", *req.CartToken, err)
		return map[string]int{}
	}
	if cart.UserID != req.UserID {
		uc.logger.Warn("ListSlots: cart token=%s belongs to another user", *req.CartToken)
		return map[string]int{}
	}

	return cart.InCartCounts()
}
