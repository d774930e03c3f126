package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	activityRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/activity"
	slotRepo "github.com/m04kA/RiverRun-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/RiverRun-BookingService/internal/service/slots/models"
)

// CreateManualSlot создает разовый слот вне правил расписания
func (e *Engine) CreateManualSlot(ctx context.Context, req *models.CreateSlotRequest) (*domain.Slot, error) {
	e.logger.Info("CreateManualSlot: activity=%s, date=%s, start=%s", req.ActivityID, req.Date, req.StartTime)

	// 1. Валидация входных данных
	if req.ActivityID == "" {
		return nil, fmt.Errorf("%w: activityId is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	// 2. Активность
	activity, err := e.activityRepo.GetByID(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			e.logger.Warn("CreateManualSlot: activity id=%s not found", req.ActivityID)
			return nil, ErrActivityNotFound
		}
		e.logger.Error("CreateManualSlot: failed to get activity id=%s: %v", req.ActivityID, err)
		return nil, fmt.Errorf("%w: CreateManualSlot - get activity: %w", ErrInternal, err)
	}

	if missing := activity.UnqualifiedStaff(req.StaffIDs); len(missing) > 0 {
		e.logger.Warn("CreateManualSlot: staff %v not qualified for activity id=%s", missing, activity.ID)
		return nil, fmt.Errorf("%w: %v", ErrStaffNotQualified, missing)
	}

	// 3. Время окончания, цена и вместимость
	endTime, err := req.StartTime.AddMinutes(activity.DurationMinutes)
	if req.EndTime != nil {
		endTime, err = *req.EndTime, req.EndTime.Validate()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	if !req.StartTime.IsBefore(endTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	price := activity.Price
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
		}
		price = *req.Price
	}

	capacity := activity.CapacityPerSlot
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	if capacity < domain.MinCapacity || capacity > domain.MaxCapacity {
		return nil, fmt.Errorf("%w: capacity must be between %d and %d", ErrInvalidInput, domain.MinCapacity, domain.MaxCapacity)
	}

	// 4. Сохраняем
	slot, err := e.slotRepo.Create(ctx, &domain.Slot{
		ID:            uuid.NewString(),
		ActivityID:    activity.ID,
		ActivityTitle: activity.Title,
		StaffIDs:      req.StaffIDs,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       endTime,
		Price:         price,
		Capacity:      capacity,
	})
	if err != nil {
		e.logger.Error("CreateManualSlot: failed to create slot: %v", err)
		return nil, fmt.Errorf("%w: CreateManualSlot - create slot: %w", ErrInternal, err)
	}

	e.logger.Info("CreateManualSlot: created slot id=%s", slot.ID)
	return slot, nil
}

// DeleteManualSlot удаляет ручной слот. Бронирования на него сохраняют снимок названия и цены.
func (e *Engine) DeleteManualSlot(ctx context.Context, id string) error {
	e.logger.Info("DeleteManualSlot: slot id=%s", id)

	if domain.IsGeneratedSlotID(id) {
		e.logger.Warn("DeleteManualSlot: slot id=%s is generated", id)
		return ErrGeneratedSlot
	}

	if err := e.slotRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			e.logger.Warn("DeleteManualSlot: slot id=%s not found", id)
			return ErrSlotNotFound
		}
		e.logger.Error("DeleteManualSlot: failed to delete slot id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteManualSlot - delete slot: %w", ErrInternal, err)
	}

	e.logger.Info("DeleteManualSlot: deleted slot id=%s", id)
	return nil
}
