package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	slotRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// Engine движок слотов: разворачивает правила в слоты на дату, добавляет ручные слоты
// и подставляет число проданных мест из бронирований. Сгенерированные слоты не сохраняются.
type Engine struct {
	ruleRepo     RuleRepository
	slotRepo     SlotRepository
	activityRepo ActivityRepository
	bookingRepo  BookingRepository
	metrics      Metrics
	logger       Logger
}

// NewEngine создает новый экземпляр движка слотов
func NewEngine(
	ruleRepo RuleRepository,
	slotRepo SlotRepository,
	activityRepo ActivityRepository,
	bookingRepo BookingRepository,
	metrics Metrics,
	logger Logger,
) *Engine {
	return &Engine{
		ruleRepo:     ruleRepo,
		slotRepo:     slotRepo,
		activityRepo: activityRepo,
		bookingRepo:  bookingRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// SlotsForDate возвращает все слоты на дату, упорядоченные по времени начала.
// Повторный вызов на тех же данных возвращает те же id и те же bookedCount.
func (e *Engine) SlotsForDate(ctx context.Context, date types.Date) ([]*domain.Slot, error) {
	// 1. Правила, действующие на дату (старые первыми)
	rules, err := e.ruleRepo.ListActiveOn(ctx, date)
	if err != nil {
		e.logger.Error("SlotsForDate: failed to list rules for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: SlotsForDate - list rules: %w", ErrInternal, err)
	}

	// 2. Активности правил: длительность читается актуальная
	activityIDs := make([]string, 0, len(rules))
	seenActivity := make(map[string]bool, len(rules))
	for _, rule := range rules {
		if !seenActivity[rule.ActivityID] {
			seenActivity[rule.ActivityID] = true
			activityIDs = append(activityIDs, rule.ActivityID)
		}
	}

	activities, err := e.activityRepo.GetByIDs(ctx, activityIDs)
	if err != nil {
		e.logger.Error("SlotsForDate: failed to load activities: %v", err)
		return nil, fmt.Errorf("%w: SlotsForDate - load activities: %w", ErrInternal, err)
	}

	// 3. Разворачиваем правила; при совпадении id побеждает более старое правило
	result := make([]*domain.Slot, 0)
	seenSlot := make(map[string]bool)
	generated := 0
	for _, rule := range rules {
		activity, ok := activities[rule.ActivityID]
		if !ok {
			e.logger.Warn("SlotsForDate: rule id=%s references missing activity id=%s", rule.ID, rule.ActivityID)
			continue
		}

		for _, slot := range rule.GenerateSlots(date, activity) {
			if seenSlot[slot.ID] {
				continue
			}
			seenSlot[slot.ID] = true
			result = append(result, slot)
			generated++
		}
	}

	// 4. Ручные слоты на дату
	manual, err := e.slotRepo.GetByDate(ctx, date)
	if err != nil {
		e.logger.Error("SlotsForDate: failed to load manual slots for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: SlotsForDate - load manual slots: %w", ErrInternal, err)
	}
	for _, slot := range manual {
		if seenSlot[slot.ID] {
			continue
		}
		seenSlot[slot.ID] = true
		result = append(result, slot)
	}

	// 5. Проданные места из бронирований
	if err := e.attachBookedCounts(ctx, result); err != nil {
		return nil, err
	}

	// 6. Сортировка по времени начала
	domain.SortSlots(result)

	e.metrics.AddGeneratedSlots(generated)
	e.logger.Info("SlotsForDate: date=%s, rules=%d, generated=%d, manual=%d", date, len(rules), generated, len(manual))

	return result, nil
}

// FindSlot находит слот по id. Id сгенерированного слота разбирается обратно
// в дату и активность, и слот строится заново из правил этой даты.
func (e *Engine) FindSlot(ctx context.Context, id string) (*domain.Slot, error) {
	if date, _, _, ok := domain.ParseGeneratedSlotID(id); ok {
		slots, err := e.SlotsForDate(ctx, date)
		if err != nil {
			return nil, err
		}
		for _, slot := range slots {
			if slot.ID == id {
				return slot, nil
			}
		}
		return nil, ErrSlotNotFound
	}

	slot, err := e.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		e.logger.Error("FindSlot: failed to get slot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: FindSlot - get slot: %w", ErrInternal, err)
	}

	if err := e.attachBookedCounts(ctx, []*domain.Slot{slot}); err != nil {
		return nil, err
	}

	return slot, nil
}

func (e *Engine) attachBookedCounts(ctx context.Context, slots []*domain.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	ids := make([]string, len(slots))
	for i, slot := range slots {
		ids[i] = slot.ID
	}

	booked, err := e.bookingRepo.GetBookedQuantities(ctx, ids)
	if err != nil {
		e.logger.Error("attachBookedCounts: failed to load booked quantities: %v", err)
		return fmt.Errorf("%w: attachBookedCounts - booked quantities: %w", ErrInternal, err)
	}

	for _, slot := range slots {
		slot.BookedCount = booked[slot.ID]
	}

	return nil
}
